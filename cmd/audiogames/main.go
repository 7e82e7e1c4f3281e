// Audiogames - голосовые и клавиатурные игры для детей: меню, "Audio Memory
// Tiles" и "Daily Routine Adventure".
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"audiogames/internal/app"
	"audiogames/internal/assets"
	"audiogames/internal/config"
	"audiogames/internal/dialog"
	"audiogames/internal/hotkey"
	"audiogames/internal/i18n"
)

// Version устанавливается при сборке через -ldflags.
var Version = "dev"

var (
	assetsDir     = flag.String("assets", "", "каталог со звуками (speech/, sounds/, voice_lines/)")
	downloadModel = flag.Bool("download-model", false, "скачать модель распознавания и выйти")
	setHotkey     = flag.Bool("set-hotkey", false, "выбрать горячую клавишу паузы и выйти")
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)
	flag.Parse()
	log.Printf("Audiogames %s запускается...", Version)

	// Запускаем в главном потоке (требование для macOS и некоторых GUI)
	hotkey.RunOnMainThread(run)
}

func run() {
	cfg, err := config.New()
	if err != nil {
		log.Printf("Ошибка загрузки конфигурации: %v", err)
		os.Exit(1)
	}
	if *assetsDir != "" {
		cfg.SetAssetsDir(*assetsDir)
	}
	app.ApplyLanguage(cfg)

	switch {
	case *downloadModel:
		if err := download(cfg); err != nil {
			log.Printf("Ошибка загрузки модели: %v", err)
			os.Exit(1)
		}
		return
	case *setHotkey:
		chooseHotkey(cfg)
		return
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Printf("Ошибка инициализации: %v", err)
		fatal(err)
	}
	defer application.Close()

	log.Println("Приложение запущено. Выберите игру: 1 или 2, Escape - выход.")
	if err := application.Run(); err != nil {
		log.Printf("Окно закрыто с ошибкой: %v", err)
	}
	log.Println("Выход")
}

func download(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return app.DownloadModel(ctx, cfg)
}

func chooseHotkey(cfg *config.Config) {
	hk, err := dialog.SelectHotkey(cfg.MuteHotkey())
	if err != nil {
		log.Printf("Выбор клавиши отменён: %v", err)
		return
	}
	if err := cfg.SetMuteHotkey(hk); err != nil {
		log.Printf("Ошибка сохранения конфигурации: %v", err)
		os.Exit(1)
	}
	log.Printf("Горячая клавиша паузы: %s", hk)
	dialog.ShowInfo(i18n.T("app_name"), fmt.Sprintf(i18n.T("hotkey_saved"), hk))
}

// fatal показывает причину и завершает процесс.
func fatal(err error) {
	msg := i18n.T("error_start_game") + ": " + err.Error()
	switch {
	case errors.Is(err, assets.ErrSpeechDirMissing):
		msg = i18n.T("error_speech_dir") + "\n" + err.Error()
	case errors.Is(err, app.ErrAudioOutput):
		msg = i18n.T("error_audio_output") + "\n" + err.Error()
	}
	dialog.ShowError(i18n.T("app_name"), msg)
	os.Exit(1)
}
