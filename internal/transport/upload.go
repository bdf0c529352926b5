package transport

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"kleincompress/internal/common"
	compressionDomain "kleincompress/internal/domain/compression"
)

// receiveUpload reads the multipart body part by part and returns the
// first file part. Parts that are not files and later file parts are
// drained without being buffered, and the upload is only returned once the
// whole body has been consumed. A file of a disallowed type fails the
// request as soon as its part header is read.
func (s *Server) receiveUpload(w http.ResponseWriter, r *http.Request) (*compressionDomain.UploadedFile, error) {
	maxSize := s.config.Upload.MaxSizeBytes
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+common.MultipartOverhead)

	reader, err := r.MultipartReader()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrNotMultipart, err)
	}

	var file *compressionDomain.UploadedFile
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, bodyError(err)
		}

		if part.FileName() == "" || file != nil {
			if err := drain(part); err != nil {
				return nil, bodyError(err)
			}
			continue
		}

		mimeType := common.NormalizeMIMEType(part.Header.Get("Content-Type"))
		if !common.IsAllowedMIMEType(mimeType) {
			return nil, fmt.Errorf("%w: %q", common.ErrUnsupportedType, mimeType)
		}

		data, err := io.ReadAll(io.LimitReader(part, maxSize+1))
		part.Close()
		if err != nil {
			return nil, bodyError(err)
		}
		if int64(len(data)) > maxSize {
			return nil, common.ErrFileTooLarge
		}

		file = &compressionDomain.UploadedFile{
			Name:     part.FileName(),
			MIMEType: mimeType,
			Data:     data,
		}
	}

	if file == nil {
		return nil, common.ErrNoFileUploaded
	}
	return file, nil
}

func drain(part *multipart.Part) error {
	defer part.Close()
	_, err := io.Copy(io.Discard, part)
	return err
}

// bodyError classifies a failure while reading the request body.
func bodyError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return common.ErrFileTooLarge
	}
	return fmt.Errorf("%w: %v", common.ErrNotMultipart, err)
}
