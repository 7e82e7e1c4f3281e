// gen-speech озвучивает фразы игр через espeak-ng и раскладывает WAV-файлы
// так, как их ищет библиотека ассетов.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"audiogames/internal/assets"
	"audiogames/internal/routine"
	"audiogames/internal/tiles"
)

var (
	outDir    = flag.String("out", "assets", "корневой каталог ассетов")
	voice     = flag.String("voice", "en-us", "голос espeak")
	speed     = flag.Int("speed", 150, "скорость, слов в минуту")
	overwrite = flag.Bool("force", false, "перезаписывать существующие файлы")
)

var errNoEspeak = errors.New("espeak-ng or espeak not found in PATH")

type job struct {
	text string
	path string
}

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)
	flag.Parse()

	bin, err := findEspeak()
	if err != nil {
		log.Fatal(err)
	}

	jobs := plan(*outDir)
	made, skipped := 0, 0
	for _, j := range jobs {
		if !*overwrite {
			if _, err := os.Stat(j.path); err == nil {
				skipped++
				continue
			}
		}
		if err := render(bin, j); err != nil {
			log.Fatalf("Ошибка озвучки %q: %v", j.text, err)
		}
		made++
	}
	log.Printf("Готово: %d создано, %d пропущено, каталог %s", made, skipped, *outDir)
}

// plan перечисляет все файлы, которые ожидают игры.
func plan(root string) []job {
	var jobs []job
	for _, phrase := range assets.Phrases() {
		jobs = append(jobs, job{
			text: phrase,
			path: filepath.Join(root, assets.SpeechDir, assets.Sanitize(phrase)+".wav"),
		})
	}
	for _, label := range tiles.Labels {
		jobs = append(jobs, job{
			text: label,
			path: filepath.Join(root, assets.SoundsDir, label+".wav"),
		})
	}
	for i, level := range routine.Levels {
		lines := map[assets.Category]string{
			assets.CategoryPrompt:  level.Prompt,
			assets.CategorySuccess: level.Success,
			assets.CategoryFail:    level.Fail,
		}
		for _, cat := range assets.Categories {
			jobs = append(jobs, job{
				text: lines[cat],
				path: filepath.Join(root, assets.VoiceDir, assets.VoiceLineName(cat, i)+".wav"),
			})
		}
	}
	return jobs
}

func findEspeak() (string, error) {
	for _, name := range []string{"espeak-ng", "espeak"} {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", errNoEspeak
}

// render пишет WAV из --stdout espeak в j.path.
func render(bin string, j job) error {
	if err := os.MkdirAll(filepath.Dir(j.path), 0755); err != nil {
		return err
	}
	cmd := exec.Command(bin, "-v", *voice, "-s", strconv.Itoa(*speed), "--stdout", j.text)
	data, err := cmd.Output()
	if err != nil {
		return fmt.Errorf("espeak: %w", err)
	}
	if err := os.WriteFile(j.path, data, 0644); err != nil {
		return fmt.Errorf("запись wav: %w", err)
	}
	log.Printf("Создан: %s", j.path)
	return nil
}
