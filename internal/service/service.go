package service

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/ginext"

	"confbackend/internal/cloudstore"
	"confbackend/internal/dto"
	"confbackend/internal/metrics"
	"confbackend/internal/model"
	"confbackend/internal/repo"
	"confbackend/pkg/validator"
)

type Service interface {
	SubmitContact(ctx *ginext.Context)
	Register(ctx *ginext.Context)
	SubmitPaper(ctx *ginext.Context)
	GetPaper(ctx *ginext.Context)
	Health(ctx *ginext.Context)
}

// Publisher is the broker-facing slice of rabbit.Client. A failed publish
// never fails the HTTP request.
type Publisher interface {
	Publish(message []byte) error
}

type service struct {
	repo     repo.Repository
	log      *zerolog.Logger
	pub      Publisher
	uploader cloudstore.Uploader
	metrics  *metrics.Metrics
}

func NewService(repo repo.Repository, logger *zerolog.Logger, pub Publisher, uploader cloudstore.Uploader, m *metrics.Metrics) Service {
	return &service{
		repo:     repo,
		log:      logger,
		pub:      pub,
		uploader: uploader,
		metrics:  m,
	}
}

func (s *service) SubmitContact(ctx *ginext.Context) {
	var req dto.SubmitContactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		s.metrics.IncRejected(dto.EventContact, "validation")
		dto.ValidationError(ctx, dto.ErrInvalidJSON)
		return
	}

	req.Normalize()
	if verr := validator.Validate(ctx, req); verr != nil {
		s.metrics.IncRejected(dto.EventContact, "validation")
		dto.ValidationError(ctx, verr.Error())
		return
	}

	contact := &model.Contact{
		ID:      uuid.NewString(),
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	}

	if err := s.repo.InsertContact(ctx.Request.Context(), contact); err != nil {
		s.log.Error().Err(err).Msg("failed to save contact")
		s.metrics.IncRejected(dto.EventContact, "internal")
		dto.InternalServerError(ctx, err)
		return
	}

	s.log.Info().Str("contact_id", contact.ID).Msg("contact saved successfully")
	s.metrics.IncAccepted(dto.EventContact)
	s.publishEvent(dto.EventContact, contact.ID, contact.Email, contact.CreatedAt)

	ctx.JSON(201, dto.ContactCreatedResponse{
		Success:     true,
		Message:     dto.MsgContactReceived,
		ReferenceID: contact.ID,
		Timestamp:   contact.CreatedAt,
	})
}

func (s *service) Register(ctx *ginext.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		s.metrics.IncRejected(dto.EventRegistration, "validation")
		dto.ValidationError(ctx, dto.ErrInvalidJSON)
		return
	}

	req.Normalize()
	if verr := validator.Validate(ctx, req); verr != nil {
		s.metrics.IncRejected(dto.EventRegistration, "validation")
		dto.ValidationError(ctx, verr.Error())
		return
	}

	regDate, err := validator.ParseDate(req.RegistrationDate)
	if err != nil {
		s.metrics.IncRejected(dto.EventRegistration, "validation")
		dto.ValidationError(ctx, "Invalid date format")
		return
	}

	// Advisory pre-check; the unique indexes below are authoritative.
	conflict, err := s.repo.FindRegistrationConflict(ctx.Request.Context(),
		req.TransactionID, req.Email, req.PaperID)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to check registration conflict")
		s.metrics.IncRejected(dto.EventRegistration, "internal")
		dto.InternalServerError(ctx, err)
		return
	}
	if conflict != "" {
		s.metrics.IncRejected(dto.EventRegistration, "conflict")
		dto.ConflictError(ctx, conflict+" already registered!")
		return
	}

	reg := &model.Registration{
		ID:               uuid.NewString(),
		Name:             req.Name,
		PaperID:          req.PaperID,
		PaperTitle:       req.PaperTitle,
		Institution:      req.Institution,
		Phone:            req.Phone,
		Email:            req.Email,
		Amount:           *req.Amount,
		FeeCategory:      req.FeeCategory,
		TransactionID:    req.TransactionID,
		RegistrationDate: regDate,
		JournalName:      req.JournalName,
	}

	if err := s.repo.InsertRegistration(ctx.Request.Context(), reg); err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicateTransactionID):
			s.metrics.IncRejected(dto.EventRegistration, "conflict")
			dto.ConflictError(ctx, repo.ConflictTransactionID+" already registered!")
		case errors.Is(err, repo.ErrDuplicateRegistration):
			s.metrics.IncRejected(dto.EventRegistration, "conflict")
			dto.ConflictError(ctx, repo.ConflictPaperID+" already registered!")
		default:
			s.log.Error().Err(err).Msg("failed to save registration")
			s.metrics.IncRejected(dto.EventRegistration, "internal")
			dto.InternalServerError(ctx, err)
		}
		return
	}

	s.log.Info().
		Str("registration_id", reg.ID).
		Str("transaction_id", reg.TransactionID).
		Msg("registration created successfully")
	s.metrics.IncAccepted(dto.EventRegistration)
	s.publishEvent(dto.EventRegistration, reg.ID, reg.Email, reg.CreatedAt)

	ctx.JSON(201, dto.RegistrationCreatedResponse{
		Success:        true,
		Message:        dto.MsgRegistrationCreated,
		RegistrationID: reg.ID,
		Data: dto.RegistrationData{
			Name:             reg.Name,
			PaperID:          reg.PaperID,
			PaperTitle:       reg.PaperTitle,
			Institution:      reg.Institution,
			Phone:            reg.Phone,
			Email:            reg.Email,
			Amount:           reg.Amount,
			FeeCategory:      reg.FeeCategory,
			TransactionID:    reg.TransactionID,
			RegistrationDate: reg.RegistrationDate,
			JournalName:      reg.JournalName,
		},
	})
}

func (s *service) SubmitPaper(ctx *ginext.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		s.metrics.IncRejected(dto.EventPaper, "validation")
		dto.ValidationError(ctx, dto.ErrNoFileAttached)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		s.log.Error().Err(err).Msg("failed to open uploaded file")
		s.metrics.IncRejected(dto.EventPaper, "internal")
		dto.InternalServerError(ctx, err)
		return
	}
	defer file.Close()

	res, err := s.uploader.Upload(ctx.Request.Context(), file, cloudstore.PaperFolder)
	if err != nil {
		s.log.Error().Err(err).Str("filename", fileHeader.Filename).Msg("object store upload failed")
		s.metrics.IncRejected(dto.EventPaper, "upload")
		dto.InternalServerError(ctx, err)
		return
	}

	size := res.Bytes
	if size == 0 {
		size = fileHeader.Size
	}

	paper := &model.Paper{
		ID:           uuid.NewString(),
		Name:         ctx.PostForm("name"),
		Institution:  ctx.PostForm("institution"),
		Title:        ctx.PostForm("title"),
		Email:        ctx.PostForm("email"),
		Phone:        ctx.PostForm("phone"),
		ResearchArea: ctx.PostForm("research_area"),
		Journal:      ctx.PostForm("journal"),
		Country:      ctx.PostForm("country"),
		Filename:     fileHeader.Filename,
		Mimetype:     fileHeader.Header.Get("Content-Type"),
		Size:         size,
		FileURL:      res.URL,
	}

	if err := s.repo.InsertPaper(ctx.Request.Context(), paper); err != nil {
		s.log.Error().Err(err).Msg("failed to save paper")
		s.metrics.IncRejected(dto.EventPaper, "internal")
		dto.InternalServerError(ctx, err)
		return
	}

	s.log.Info().
		Str("paper_id", paper.ID).
		Str("file_url", paper.FileURL).
		Int64("size", paper.Size).
		Msg("paper submitted successfully")
	s.metrics.AddUploadedBytes(paper.Size)
	s.metrics.IncAccepted(dto.EventPaper)
	s.publishEvent(dto.EventPaper, paper.ID, paper.Email, paper.CreatedAt)

	ctx.JSON(201, dto.PaperCreatedResponse{
		Success: true,
		Message: dto.MsgPaperSubmitted,
		PaperID: paper.ID,
		FileURL: paper.FileURL,
	})
}

func (s *service) GetPaper(ctx *ginext.Context) {
	id := ctx.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		dto.NotFoundError(ctx, dto.ErrPaperNotFound)
		return
	}

	paper, err := s.repo.GetPaperByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrPaperNotFound) {
			dto.NotFoundError(ctx, dto.ErrPaperNotFound)
			return
		}
		s.log.Error().Err(err).Str("paper_id", id).Msg("failed to fetch paper")
		dto.InternalServerError(ctx, err)
		return
	}

	ctx.JSON(200, dto.PaperResponse{
		Success:  true,
		Filename: paper.Filename,
		Mimetype: paper.Mimetype,
		Size:     paper.Size,
		FileURL:  paper.FileURL,
	})
}

func (s *service) Health(ctx *ginext.Context) {
	ctx.JSON(200, dto.HealthResponse{
		Success: true,
		Message: "Conference Backend API is running",
	})
}

func (s *service) publishEvent(kind, id, email string, createdAt time.Time) {
	if s.pub == nil {
		return
	}
	payload, err := json.Marshal(dto.SubmissionEvent{
		Kind:      kind,
		ID:        id,
		Email:     email,
		CreatedAt: createdAt,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("failed to marshal submission event")
		return
	}
	if err := s.pub.Publish(payload); err != nil {
		s.log.Error().Err(err).Str("kind", kind).Msg("failed to publish submission event")
	}
}
