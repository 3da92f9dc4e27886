package handlers

import "github.com/go-playground/validator/v10"

// Validate общий валидатор структур запросов
// Хендлеры записи проверяют форму запроса до передачи в сервисный слой
var Validate = validator.New(validator.WithRequiredStructEnabled())
