package dto

import (
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wb-go/wbf/ginext"
)

const (
	MsgContactReceived     = "Thank you for your message! We'll get back to you soon."
	MsgRegistrationCreated = "Registration Successful!"
	MsgPaperSubmitted      = "Paper submitted successfully!"

	ErrInvalidJSON      = "Invalid JSON format"
	ErrNoFileAttached   = "No file uploaded"
	ErrPaperNotFound    = "Paper not found"
	ErrEndpointNotFound = "Endpoint not found"
	ErrInternal         = "Internal Server Error"
)

var nonDigits = regexp.MustCompile(`[^\d]`)

type SubmitContactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=100"`
	Phone   string `json:"phone" validate:"omitempty,max=20"`
	Message string `json:"message" validate:"required,max=1000"`
}

// Normalize trims the payload and canonicalizes email and phone before
// validation, so a whitespace-only field fails the required check.
func (r *SubmitContactRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = nonDigits.ReplaceAllString(r.Phone, "")
	r.Message = strings.TrimSpace(r.Message)
}

type RegisterRequest struct {
	Name             string   `json:"name" validate:"required"`
	PaperID          string   `json:"paperId" validate:"required"`
	PaperTitle       string   `json:"paperTitle" validate:"required"`
	Institution      string   `json:"institution" validate:"required"`
	Phone            string   `json:"phone" validate:"required,inmobile"`
	Email            string   `json:"email" validate:"required,email"`
	Amount           *float64 `json:"amount" validate:"required,gte=0"`
	FeeCategory      string   `json:"fee_category" validate:"required,feecategory"`
	TransactionID    string   `json:"transaction_id" validate:"required"`
	RegistrationDate string   `json:"registration_date" validate:"required,dateformat,pastdate"`
	JournalName      string   `json:"journalName"`
}

func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.PaperID = strings.ToUpper(strings.TrimSpace(r.PaperID))
	r.PaperTitle = strings.TrimSpace(r.PaperTitle)
	r.Institution = strings.TrimSpace(r.Institution)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.TransactionID = strings.TrimSpace(r.TransactionID)
	r.JournalName = strings.TrimSpace(r.JournalName)
}

type ContactCreatedResponse struct {
	Success     bool      `json:"success"`
	Message     string    `json:"message"`
	ReferenceID string    `json:"referenceId"`
	Timestamp   time.Time `json:"timestamp"`
}

type RegistrationData struct {
	Name             string    `json:"name"`
	PaperID          string    `json:"paperId"`
	PaperTitle       string    `json:"paperTitle"`
	Institution      string    `json:"institution"`
	Phone            string    `json:"phone"`
	Email            string    `json:"email"`
	Amount           float64   `json:"amount"`
	FeeCategory      string    `json:"fee_category"`
	TransactionID    string    `json:"transaction_id"`
	RegistrationDate time.Time `json:"registration_date"`
	JournalName      string    `json:"journalName,omitempty"`
}

type RegistrationCreatedResponse struct {
	Success        bool             `json:"success"`
	Message        string           `json:"message"`
	RegistrationID string           `json:"registrationId"`
	Data           RegistrationData `json:"data"`
}

type PaperCreatedResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	PaperID string `json:"paperId"`
	FileURL string `json:"fileUrl"`
}

type PaperResponse struct {
	Success  bool   `json:"success"`
	Filename string `json:"filename"`
	Mimetype string `json:"mimetype"`
	Size     int64  `json:"size"`
	FileURL  string `json:"fileUrl"`
}

type HealthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Detail  string `json:"detail,omitempty"`
}

// SubmissionEvent is published to the broker after every successful write.
type SubmissionEvent struct {
	Kind      string    `json:"kind"`
	ID        string    `json:"id"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	EventContact      = "contact"
	EventRegistration = "registration"
	EventPaper        = "paper"
)

func ValidationError(c *ginext.Context, msg string) {
	c.JSON(400, ErrorResponse{Success: false, Error: msg})
}

func ConflictError(c *ginext.Context, msg string) {
	c.JSON(409, ErrorResponse{Success: false, Error: msg})
}

func NotFoundError(c *ginext.Context, msg string) {
	c.JSON(404, ErrorResponse{Success: false, Error: msg})
}

// InternalServerError keeps the client message generic; the underlying
// error is attached only outside release mode.
func InternalServerError(c *ginext.Context, err error) {
	resp := ErrorResponse{Success: false, Error: ErrInternal}
	if gin.Mode() != gin.ReleaseMode && err != nil {
		resp.Detail = err.Error()
	}
	c.JSON(500, resp)
}
