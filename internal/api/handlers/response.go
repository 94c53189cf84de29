package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

const (
	msgInternalError = "внутренняя ошибка сервера"
	maxBodyBytes     = 1 << 20
)

// Response общий конверт ответа API
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// DecodeJSON декодирует тело запроса, неизвестные поля - ошибка
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

// RespondJSON успешный ответ с данными
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	respond(w, status, Response{Success: true, Data: data})
}

// RespondMessage успешный ответ с сообщением и данными
func RespondMessage(w http.ResponseWriter, status int, message string, data interface{}) {
	respond(w, status, Response{Success: true, Message: message, Data: data})
}

// RespondError ответ с ошибкой
func RespondError(w http.ResponseWriter, status int, message string) {
	respond(w, status, Response{Success: false, Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// StatusFromError HTTP статус по виду доменной ошибки
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrAlreadyBooked),
		errors.Is(err, domain.ErrSelfConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrCapacityExceeded),
		errors.Is(err, domain.ErrPastDate),
		errors.Is(err, domain.ErrPolicyViolation),
		errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// RespondDomainError отвечает статусом по виду ошибки.
// Для 500 текст ошибки наружу не отдаётся. Возвращает выбранный статус.
func RespondDomainError(w http.ResponseWriter, err error) int {
	status := StatusFromError(err)
	if status == http.StatusInternalServerError {
		RespondInternalError(w)
		return status
	}
	RespondError(w, status, err.Error())
	return status
}

// PathUUID читает uuid из переменной пути
func PathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := mux.Vars(r)[name]
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	return id, nil
}

// QueryUUID читает необязательный uuid из query. Пустое значение - nil
func QueryUUID(r *http.Request, name string) (*uuid.UUID, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	return &id, nil
}

// QueryDate читает необязательную дату YYYY-MM-DD из query
func QueryDate(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	date, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	return &date, nil
}

// QueryBool читает необязательный bool из query
func QueryBool(r *http.Request, name string) (*bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	return &v, nil
}

// QueryString читает необязательную строку из query
func QueryString(r *http.Request, name string) *string {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	return &raw
}

func respond(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
