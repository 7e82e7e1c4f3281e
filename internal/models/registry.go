// Package models управляет моделями распознавания речи.
package models

// Engine тип движка распознавания.
type Engine string

const (
	EngineVosk Engine = "vosk"
)

// ModelInfo информация о модели.
type ModelInfo struct {
	ID       string // Уникальный идентификатор: "vosk-en-small"
	Engine   Engine // Движок
	Name     string // Отображаемое имя
	Filename string // Имя директории после распаковки
	URL      string // URL для скачивания
	Size     int64  // Размер в байтах (для прогресса)
	IsZip    bool   // Нужно ли распаковывать
}

// Registry все доступные модели.
// Игры понимают короткие английские фразы, поэтому хватает small модели.
var Registry = []ModelInfo{
	{
		ID:       "vosk-en-small",
		Engine:   EngineVosk,
		Name:     "English Small",
		Filename: "vosk-model-small-en-us-0.15",
		URL:      "https://alphacephei.com/vosk/models/vosk-model-small-en-us-0.15.zip",
		Size:     40 * 1024 * 1024,
		IsZip:    true,
	},
	{
		ID:       "vosk-en-lgraph",
		Engine:   EngineVosk,
		Name:     "English LGraph",
		Filename: "vosk-model-en-us-0.22-lgraph",
		URL:      "https://alphacephei.com/vosk/models/vosk-model-en-us-0.22-lgraph.zip",
		Size:     128 * 1024 * 1024,
		IsZip:    true,
	},
	{
		ID:       "vosk-en",
		Engine:   EngineVosk,
		Name:     "English Large",
		Filename: "vosk-model-en-us-0.22",
		URL:      "https://alphacephei.com/vosk/models/vosk-model-en-us-0.22.zip",
		Size:     1800 * 1024 * 1024,
		IsZip:    true,
	},
}

// DefaultModelID модель по умолчанию.
func DefaultModelID() string {
	return "vosk-en-small"
}

// GetModel возвращает модель по ID.
func GetModel(id string) (ModelInfo, bool) {
	for _, m := range Registry {
		if m.ID == id {
			return m, true
		}
	}
	return ModelInfo{}, false
}

// GetModelsByEngine возвращает модели для указанного движка.
func GetModelsByEngine(engine Engine) []ModelInfo {
	var result []ModelInfo
	for _, m := range Registry {
		if m.Engine == engine {
			result = append(result, m)
		}
	}
	return result
}
