package common

const (
	// Upload limits
	DefaultMaxUploadSize = 10 * 1024 * 1024
	MultipartOverhead    = 1 << 20

	// MIME types accepted by the upload receiver
	MIMETypePDF           = "application/pdf"
	MIMETypeZip           = "application/zip"
	MIMETypeZipCompressed = "application/x-zip-compressed"

	// Compression constants
	CompressedFilenamePrefix = "compressed_"
	DefaultZipLevel          = 9
	MaxConcurrencyLimit      = 8

	// Job status values stored with each compression record
	StatusCompleted = "completed"
	StatusError     = "error"
)

// AllowedMIMETypes lists the upload content types that reach the dispatcher.
var AllowedMIMETypes = []string{MIMETypePDF, MIMETypeZip, MIMETypeZipCompressed}

// Messages returned to clients in the JSON error body.
const (
	MsgMethodNotAllowed = "Method not allowed"
	MsgNoFileUploaded   = "Tidak ada file yang diunggah."
	MsgUnsupportedType  = "Hanya file PDF dan ZIP yang didukung."
	MsgFileTooLargeFmt  = "File melebihi batas maksimum %dMB."
	MsgNotMultipart     = "Permintaan harus berupa multipart/form-data."
	MsgProcessingFailed = "Gagal memproses file."
	MsgServerBusy       = "Server sedang sibuk, coba lagi nanti."
	MsgUnauthorized     = "unauthorized"
)
