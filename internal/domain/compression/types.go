package compression

import "kleincompress/internal/common"

// Kind selects the transform applied to an upload.
type Kind int

const (
	KindUnknown Kind = iota
	KindPDF
	KindArchive
)

func (k Kind) String() string {
	switch k {
	case KindPDF:
		return "pdf"
	case KindArchive:
		return "archive"
	default:
		return "unknown"
	}
}

// ContentType is the media type of the transform's output.
func (k Kind) ContentType() string {
	switch k {
	case KindPDF:
		return common.MIMETypePDF
	case KindArchive:
		return common.MIMETypeZip
	default:
		return "application/octet-stream"
	}
}

// KindForMIME maps an upload's MIME type onto a transform.
func KindForMIME(mimeType string) Kind {
	switch common.NormalizeMIMEType(mimeType) {
	case common.MIMETypePDF:
		return KindPDF
	case common.MIMETypeZip, common.MIMETypeZipCompressed:
		return KindArchive
	default:
		return KindUnknown
	}
}

// UploadedFile is the single file received with a compress request. ID
// identifies the compression job created for it.
type UploadedFile struct {
	ID       string
	Name     string
	MIMEType string
	Data     []byte
}

// Kind returns the transform selected by the file's MIME type.
func (f UploadedFile) Kind() Kind {
	return KindForMIME(f.MIMEType)
}

// Size returns the number of buffered bytes.
func (f UploadedFile) Size() int64 {
	return int64(len(f.Data))
}

// CompressionOptions holds the tunables applied by the transforms.
type CompressionOptions struct {
	ZipLevel         int    `json:"zip_compression_level"`
	PDFObjectStreams bool   `json:"pdf_object_streams"`
	PDFXRefStreams   bool   `json:"pdf_xref_streams"`
	PDFValidation    string `json:"pdf_validation"`
}

// DefaultCompressionOptions returns default compression options
func DefaultCompressionOptions() CompressionOptions {
	return CompressionOptions{
		ZipLevel:         common.DefaultZipLevel,
		PDFObjectStreams: true,
		PDFXRefStreams:   true,
		PDFValidation:    "relaxed",
	}
}

// Result describes one finished transform. Data is only set for PDFs; the
// archive path streams its output instead of buffering it.
type Result struct {
	ID             string
	Kind           Kind
	Filename       string
	ContentType    string
	Data           []byte
	OriginalSize   int64
	CompressedSize int64
}

// CompressionRatio is the percentage saved relative to the upload.
func (r *Result) CompressionRatio() float64 {
	if r.OriginalSize == 0 {
		return 0
	}
	return float64(r.OriginalSize-r.CompressedSize) / float64(r.OriginalSize) * 100
}
