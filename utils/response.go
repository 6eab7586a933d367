package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// JSONResponse est l'enveloppe commune à toutes les réponses de l'API.
type JSONResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    interface{}  `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError détaille une erreur de validation champ par champ.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Success: code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	message := err.Error()
	if code == http.StatusInternalServerError {
		// Le détail reste côté serveur, jamais dans la réponse.
		ErrorLogger.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		message = "Erreur interne du serveur"
	}
	c.JSON(code, JSONResponse{
		Success: false,
		Message: message,
	})
}

// RespondBindingError transforme une erreur de binding gin en réponse 400
// avec la liste des champs fautifs quand l'erreur vient du validateur.
func RespondBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fieldErrors := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fieldErrors = append(fieldErrors, FieldError{
				Field:   fe.Field(),
				Message: validationMessage(fe),
			})
		}
		c.JSON(http.StatusBadRequest, JSONResponse{
			Success: false,
			Message: "Données invalides",
			Errors:  fieldErrors,
		})
		return
	}
	c.JSON(http.StatusBadRequest, JSONResponse{
		Success: false,
		Message: "Corps de requête invalide",
	})
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "champ requis"
	case "email":
		return "email invalide"
	case "min":
		return "valeur trop courte (minimum " + fe.Param() + ")"
	case "max":
		return "valeur trop longue (maximum " + fe.Param() + ")"
	case "gt":
		return "doit être strictement supérieur à " + fe.Param()
	case "oneof":
		return "doit être l'une des valeurs: " + fe.Param()
	case "url":
		return "URL invalide"
	}
	return "valeur invalide"
}
