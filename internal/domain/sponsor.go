package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Sponsor представляет спонсора мероприятия
type Sponsor struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Amount       float64   `json:"amount"`
	BusinessType string    `json:"businessType"`
	Location     string    `json:"location"`
	AssignedTeam string    `json:"assignedTeam"`
	Package      string    `json:"package"` // Спонсорский пакет (Title, Gold, Silver, Support)
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SponsorInput представляет поля, которые клиент передает при создании спонсора
type SponsorInput struct {
	Name         string `json:"name" validate:"required"`
	Amount       Amount `json:"amount" validate:"required"`
	BusinessType string `json:"businessType" validate:"required"`
	Location     string `json:"location" validate:"required"`
	AssignedTeam string `json:"assignedTeam" validate:"required"`
	Package      string `json:"package" validate:"required"`
}

// Amount сумма спонсорского взноса. При декодировании принимает как число,
// так и строку с числом; нечисловая строка превращается в ноль.
type Amount float64

// UnmarshalJSON декодирует сумму из числа или строки
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(ParseAmount(s))
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*a = Amount(f)
	return nil
}

// ParseAmount разбирает строковую сумму, возвращая ноль для нечисловых значений
func ParseAmount(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// В ошибках используем имена полей из JSON
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate проверяет наличие всех обязательных полей.
// Возвращает *ValidationError с именем первого незаполненного поля.
func (in SponsorInput) Validate() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return &ValidationError{Field: fieldErrs[0].Field()}
	}
	return &ValidationError{Field: "body"}
}

// ToSponsor создает запись спонсора из входных данных.
// Идентификатор и временные метки проставляет хранилище.
func (in SponsorInput) ToSponsor() *Sponsor {
	return &Sponsor{
		Name:         in.Name,
		Amount:       float64(in.Amount),
		BusinessType: in.BusinessType,
		Location:     in.Location,
		AssignedTeam: in.AssignedTeam,
		Package:      in.Package,
	}
}
