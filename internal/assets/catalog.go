// Package assets сопоставляет объявленные фразы, звуки плиток и реплики
// уровней с готовыми аудиофайлами на диске.
package assets

import "strings"

var sanitizer = strings.NewReplacer(" ", "", ":", "", "!", "", "'", "", ".", "")

// Sanitize превращает фразу в имя файла речи без расширения.
func Sanitize(text string) string {
	return sanitizer.Replace(strings.ToLower(text))
}

// Фразы меню.
const (
	Welcome         = "Welcome to the Games Portal"
	SelectGame      = "Please select a game"
	OptionTiles     = "Press 1 for Audio Memory Tiles"
	OptionRoutine   = "Press 2 for Daily Routine Adventure"
	PressEscape     = "Press Escape to quit"
	InvalidChoice   = "Invalid selection"
	StartFailed     = "Error starting game."
	StartFailedHint = "Error starting game. Please check model files and dependencies."
	ReturningToMenu = "Returning to main menu."
	Goodbye         = "Goodbye"
)

// Фразы Audio Memory Tiles.
const (
	TilesWelcome     = "Welcome to Audio Memory Tiles"
	TilesBegin       = "Let's begin"
	TilesKeys        = "Use 1 to 4, Q to R, etc."
	TilesScoreHint   = "Press I at any time to hear the current score"
	TilesSpaceHint   = "Press the Spacebar to stop the current sound"
	TilesEscapeHint  = "Press Escape at any time to quit"
	TilesMatch       = "It's a match!"
	TilesTryAgain    = "Try again"
	TilesScore       = "Score"
	TilesOf          = "of"
	TilesWin         = "Congratulations! You found all the pairs. You win!"
	TilesFirstChoice = "Your first choice was a"
	TilesMatched     = "That tile is already matched. Try another."
	TilesSameTile    = "You picked the same tile again. Choose a different one."
)

// Фразы Daily Routine Adventure.
const (
	RoutineWelcome = "Welcome to Daily Routine Adventure!"
)

// TileKeys - клавиши поля 4x4 по строкам, они же озвучиваются.
var TileKeys = []string{
	"1", "2", "3", "4",
	"Q", "W", "E", "R",
	"A", "S", "D", "F",
	"Z", "X", "C", "V",
}

// Digits озвучивают счёт.
var Digits = []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}

// Phrases возвращает все фразы, которые могут прозвучать в играх.
func Phrases() []string {
	phrases := []string{
		Welcome, SelectGame, OptionTiles, OptionRoutine, PressEscape,
		InvalidChoice, StartFailed, StartFailedHint, ReturningToMenu, Goodbye,
		TilesWelcome, TilesBegin, TilesKeys, TilesScoreHint, TilesSpaceHint,
		TilesEscapeHint, TilesMatch, TilesTryAgain, TilesScore, TilesOf,
		TilesWin, TilesFirstChoice, TilesMatched, TilesSameTile,
		RoutineWelcome,
	}
	phrases = append(phrases, Digits...)
	for _, k := range TileKeys {
		if !contains(phrases, k) {
			phrases = append(phrases, k)
		}
	}
	return phrases
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Category - вид реплики уровня.
type Category string

const (
	CategoryPrompt  Category = "prompt"
	CategorySuccess Category = "success"
	CategoryFail    Category = "fail"
)

// Categories в порядке генерации файлов.
var Categories = []Category{CategoryPrompt, CategorySuccess, CategoryFail}
