package repository

import (
	"context"

	"github.com/immerse/sponsor-tracker/internal/domain"
)

// SponsorRepository определяет методы для работы с документами спонсоров
type SponsorRepository interface {
	// Create сохраняет нового спонсора, проставляя идентификатор и временные метки
	Create(ctx context.Context, sponsor *domain.Sponsor) error

	// List возвращает всех спонсоров, начиная с самых новых
	List(ctx context.Context) ([]*domain.Sponsor, error)

	// Delete удаляет спонсора по идентификатору.
	// Возвращает domain.ErrSponsorNotFound если документ не найден.
	Delete(ctx context.Context, id string) error

	// Count возвращает количество сохраненных спонсоров
	Count(ctx context.Context) (int64, error)
}

// Store объединяет репозиторий с управлением подключением к хранилищу
type Store interface {
	Sponsors() SponsorRepository

	// Ping проверяет доступность хранилища
	Ping(ctx context.Context) error

	// Close закрывает подключение
	Close(ctx context.Context) error
}
