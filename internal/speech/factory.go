package speech

import (
	"fmt"

	"audiogames/internal/models"
)

// Factory создаёт распознаватели из скачанных моделей.
type Factory struct {
	manager    *models.Manager
	modelID    string
	sampleRate float64
}

// NewFactory создаёт фабрику распознавателей для модели modelID.
// Пустой modelID означает модель по умолчанию.
func NewFactory(manager *models.Manager, modelID string, sampleRate int) *Factory {
	if modelID == "" {
		modelID = models.DefaultModelID()
	}
	return &Factory{
		manager:    manager,
		modelID:    modelID,
		sampleRate: float64(sampleRate),
	}
}

// ModelID возвращает ID модели фабрики.
func (f *Factory) ModelID() string {
	return f.modelID
}

// Create загружает новый распознаватель. Каждая игра получает свой.
func (f *Factory) Create() (Recognizer, error) {
	info, ok := models.GetModel(f.modelID)
	if !ok {
		return nil, fmt.Errorf("%w: неизвестная модель %s", ErrModelNotFound, f.modelID)
	}

	if !f.manager.IsDownloaded(info) {
		return nil, fmt.Errorf("%w: модель не скачана: %s", ErrModelNotFound, info.Name)
	}

	var rec Recognizer
	var err error

	switch info.Engine {
	case models.EngineVosk:
		rec, err = NewVosk(f.manager.GetModelPath(info), f.sampleRate)
	default:
		return nil, fmt.Errorf("неизвестный движок: %s", info.Engine)
	}

	if err != nil {
		return nil, fmt.Errorf("ошибка создания распознавателя: %w", err)
	}
	return rec, nil
}
