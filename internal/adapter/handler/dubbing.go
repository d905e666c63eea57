package handler

import (
	stdErrors "errors"
	"fmt"
	"io"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/transcript-dubber/errors"
	dubbingDTO "github.com/johnquangdev/transcript-dubber/internal/adapter/dto/dubbing"
	"github.com/johnquangdev/transcript-dubber/internal/domain/entities"
	"github.com/johnquangdev/transcript-dubber/internal/usecase/dubbing"
)

const successMessage = "Audio files generated successfully"

// Dubbing handles transcript uploads
type Dubbing struct {
	service dubbing.Service
	logger  *zap.Logger
}

// NewDubbingHandler creates a new dubbing handler
func NewDubbingHandler(service dubbing.Service, logger *zap.Logger) *Dubbing {
	return &Dubbing{
		service: service,
		logger:  logger,
	}
}

// UploadCSV handles POST /upload-csv/
// @Summary      Dub a transcript
// @Description  Turns a multilingual CSV transcript into English and target-language audio and returns presigned links to both
// @Tags         Dubbing
// @Accept       multipart/form-data
// @Produce      json
// @Param        file    formData  file    true  "Transcript CSV (UTF-8)"
// @Param        source  formData  string  true  "Target locale, e.g. fr-FR"
// @Success      200  {object}  dubbing.UploadCSVResponse  "Audio generated"
// @Failure      400  {object}  dubbing.ErrorResponse      "Invalid upload"
// @Failure      502  {object}  dubbing.ErrorResponse      "Speech provider failed"
// @Failure      503  {object}  dubbing.ErrorResponse      "Storage unavailable"
// @Router       /upload-csv/ [post]
func (h *Dubbing) UploadCSV(c echo.Context) error {
	var req dubbingDTO.UploadCSVRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Invalid form data.").WithRaw(err))
	}
	req.Source = dubbing.CleanSource(req.Source)

	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("The source locale is required.").WithRaw(err))
	}

	data, err := readUpload(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	res, err := h.service.Dub(c.Request().Context(), dubbing.Request{
		Source: req.Source,
		Data:   data,
	})
	if err != nil {
		return HandleError(h.logger, c, toAppError(err))
	}

	return HandleSuccess(h.logger, c, dubbingDTO.UploadCSVResponse{
		Message:          successMessage,
		EnglishAudioURL:  res.EnglishAudio.URL,
		LanguageAudioURL: res.TargetAudio.URL,
	})
}

func readUpload(c echo.Context) ([]byte, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, errors.ErrInvalidArgument("A CSV file is required.").WithRaw(err)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, errors.ErrInternal(err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.ErrInternal(fmt.Errorf("read upload %s: %w", fh.Filename, err))
	}
	return data, nil
}

// toAppError maps a pipeline failure onto the message shown to the user
func toAppError(err error) errors.AppError {
	var perr *dubbing.PipelineError
	if !stdErrors.As(err, &perr) {
		return errors.ErrProcessingFailed(err)
	}

	var appErr errors.AppError
	switch {
	case stdErrors.Is(perr.Kind, entities.ErrInvalidTable) && stdErrors.Is(err, dubbing.ErrEmptyTable):
		appErr = errors.ErrEmptyCSV()
	case stdErrors.Is(perr.Kind, entities.ErrInvalidTable):
		appErr = errors.ErrInvalidCSV(perr.Err)
	case stdErrors.Is(perr.Kind, entities.ErrMalformedEncoding):
		appErr = errors.ErrUnsupportedEncoding()
	case stdErrors.Is(perr.Kind, entities.ErrUnsupportedLocale):
		appErr = errors.ErrUnsupportedLocale(perr.Subject)
	case stdErrors.Is(perr.Kind, entities.ErrIncompleteVoiceCoverage):
		appErr = errors.ErrIncompleteVoiceCoverage(perr.Subject)
	case stdErrors.Is(perr.Kind, entities.ErrMissingTranscriptionColumn):
		appErr = errors.ErrMissingTranscriptionColumn(perr.Subject)
	case stdErrors.Is(perr.Kind, entities.ErrEmptyTranscriptionColumn):
		appErr = errors.ErrEmptyTranscriptionColumn(perr.Subject)
	case stdErrors.Is(perr.Kind, entities.ErrStorageUnavailable):
		appErr = errors.ErrStorageFailed(perr.Err)
	case stdErrors.Is(perr.Kind, entities.ErrProviderUnavailable):
		appErr = errors.ErrProviderUnavailable(perr.Err)
	case stdErrors.Is(perr.Kind, entities.ErrSynthesisFailed):
		appErr = errors.ErrSynthesisFailed(perr.Err)
	default:
		appErr = errors.ErrProcessingFailed(err)
	}

	return appErr.WithRaw(err).WithDetail("stage", string(perr.Stage))
}
