package dubbing

// UploadCSVRequest carries the form fields of POST /upload-csv/. The file
// part is read separately through echo.Context.FormFile. The locale format
// is checked by the pipeline once the table has been validated.
type UploadCSVRequest struct {
	Source string `form:"source" validate:"required"`
}
