// Package renderer produces certificate artifacts for download.
package renderer

import (
	"bytes"
	"fmt"
	"time"
)

// CertificateData is everything the artifact shows. Contact details are
// deliberately absent; the artifact is shared with third parties.
type CertificateData struct {
	CertificateNumber string
	CertificateType   string
	HolderName        string
	RequestNumber     string
	IssuedAt          time.Time
	ValidUntil        *time.Time
	QRPayload         string
}

// Renderer turns certificate data into artifact bytes.
type Renderer interface {
	Render(data CertificateData) ([]byte, error)
}

// TextRenderer renders a plain-text certificate. The output is
// deterministic for a given input so re-rendering is idempotent.
type TextRenderer struct{}

// NewTextRenderer creates a plain-text certificate renderer.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

const dateLayout = "02 January 2006"

func (r *TextRenderer) Render(data CertificateData) ([]byte, error) {
	if data.CertificateNumber == "" {
		return nil, fmt.Errorf("render certificate: empty certificate number")
	}

	var buf bytes.Buffer
	line := func(format string, args ...any) {
		fmt.Fprintf(&buf, format+"\n", args...)
	}

	line("==============================================")
	line("        GRAM PANCHAYAT DIGITAL PORTAL")
	line("             %s", data.CertificateType)
	line("==============================================")
	line("")
	line("Certificate No : %s", data.CertificateNumber)
	line("Issued To      : %s", data.HolderName)
	line("Request No     : %s", data.RequestNumber)
	line("Date of Issue  : %s", data.IssuedAt.Format(dateLayout))
	if data.ValidUntil != nil {
		line("Valid Until    : %s", data.ValidUntil.Format(dateLayout))
	} else {
		line("Valid Until    : No expiry")
	}
	line("")
	line("Verify at: %s", data.QRPayload)
	line("")
	line("This is a digitally generated certificate and")
	line("does not require a physical signature.")
	line("==============================================")

	return buf.Bytes(), nil
}
