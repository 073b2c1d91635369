// Package signature is the hand-off point for sending an exported SOW out
// for signing. Only a logging implementation exists; real providers plug in
// behind Sender.
package signature

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"sowbuilder/internal/logging"
	"sowbuilder/internal/sow"
)

// Signer is one party asked to sign.
type Signer struct {
	Name    string
	Email   string
	Company string
}

// Request describes a document to be signed.
type Request struct {
	FileName string
	Signers  []Signer
}

// Status of a request at the provider.
type Status string

const (
	StatusLogged Status = "logged" // recorded locally, nothing sent
	StatusSent   Status = "sent"
)

// Receipt acknowledges a Send.
type Receipt struct {
	ID     uuid.UUID
	Status Status
	At     time.Time
}

// Sender submits a request for signature.
type Sender interface {
	Send(ctx context.Context, req Request) (Receipt, error)
}

// ErrNoSigners is returned for a request with nobody to sign.
var ErrNoSigners = errors.New("signature request has no signers")

// RequestFor builds the standard two-party request for rec.
func RequestFor(rec *sow.EngagementRecord, fileName string) Request {
	return Request{
		FileName: fileName,
		Signers: []Signer{
			{Name: rec.Client.ContactName, Email: rec.Client.Email, Company: rec.Client.CompanyName},
			{Name: rec.Provider.ContactName, Email: rec.Provider.Email, Company: rec.Provider.CompanyName},
		},
	}
}

// LogSender records requests in the signature log and sends nothing.
type LogSender struct {
	Now   func() time.Time
	NewID func() uuid.UUID
}

// NewLogSender returns a LogSender on the wall clock.
func NewLogSender() *LogSender {
	return &LogSender{Now: time.Now, NewID: uuid.New}
}

// Send implements Sender.
func (s *LogSender) Send(ctx context.Context, req Request) (Receipt, error) {
	if err := ctx.Err(); err != nil {
		return Receipt{}, err
	}
	if len(req.Signers) == 0 {
		logging.Signature("rejected request for %s: no signers", req.FileName)
		return Receipt{}, ErrNoSigners
	}

	r := Receipt{ID: s.NewID(), Status: StatusLogged, At: s.Now()}
	log := logging.Get(logging.CategorySignature).With("request_id", r.ID.String(), "file", req.FileName)
	for i, sg := range req.Signers {
		log.Info("signer %d: %s <%s> (%s)", i+1, sg.Name, sg.Email, sg.Company)
	}
	log.Info("signature request logged; no provider configured")
	return r, nil
}

// Summary is the status line shown to the user.
func (r Receipt) Summary() string {
	return fmt.Sprintf("Signature request %s %s at %s", r.ID.String()[:8], r.Status, r.At.Format(time.Kitchen))
}
