package domain

import (
	"math"
	"time"
)

// DateLayout is the wire format for certificate dates.
const DateLayout = "2006-01-02"

// Certificate is a record owned by the certificate service. Dates stay in
// their wire form; the service is the source of truth for their validity.
type Certificate struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	DateStart string `json:"date_start"`
	DateEnd   string `json:"date_end"`
	OwnerID   int64  `json:"owner_id"`
}

// DaysLeft computes the whole days remaining until the certificate expires,
// rounding up. The end date counts as midnight UTC, so a certificate ending
// today yields 0 and anything already past yields a negative value. The value
// is derived per render and never stored.
func (c Certificate) DaysLeft(now time.Time) (int, error) {
	end, err := time.Parse(DateLayout, c.DateEnd)
	if err != nil {
		return 0, err
	}
	return int(math.Ceil(end.Sub(now).Hours() / 24)), nil
}

// FilterOwned returns the certificates belonging to ownerID, preserving
// order. The certificate service returns an unscoped list; ownership
// filtering happens here.
func FilterOwned(certs []Certificate, ownerID int64) []Certificate {
	owned := make([]Certificate, 0, len(certs))
	for _, c := range certs {
		if c.OwnerID == ownerID {
			owned = append(owned, c)
		}
	}
	return owned
}

// FormMode distinguishes the states of the certificate form.
type FormMode int

const (
	FormHidden FormMode = iota
	FormCreate
	FormEdit
)

// CertificateForm is the transient state of the create/edit form: either a
// new record or an edit bound to exactly one existing certificate. The zero
// value is the hidden form.
type CertificateForm struct {
	mode    FormMode
	editing int64
}

func CreateForm() CertificateForm { return CertificateForm{mode: FormCreate} }

func EditForm(certID int64) CertificateForm {
	if certID == 0 {
		return CertificateForm{}
	}
	return CertificateForm{mode: FormEdit, editing: certID}
}

func (f CertificateForm) Mode() FormMode { return f.mode }

// EditingID returns the certificate the form will update, if any.
func (f CertificateForm) EditingID() (int64, bool) {
	if f.mode != FormEdit {
		return 0, false
	}
	return f.editing, true
}
