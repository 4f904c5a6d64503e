package ledger

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/quitwise/internal/constants"
	"github.com/julianstephens/quitwise/internal/logger"
	"github.com/julianstephens/quitwise/internal/models"
	"github.com/julianstephens/quitwise/internal/validation"
)

// Export serializes the whole state document, indented.
func (l *Ledger) Export() ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	doc := l.doc.Clone()
	doc.Version = constants.SchemaVersion
	blob, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize state: %w", err)
	}
	return blob, nil
}

// Import validates blob and replaces each top-level section it contains. Sections it
// omits keep their current value. An invalid blob returns an error wrapping
// validation.ErrInvalidDocument and leaves the state untouched.
//
// When event logs are imported without dailyStats the day records are rebuilt so that
// counts match the imported logs.
func (l *Ledger) Import(blob []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	partial, err := l.validator.Decode(blob)
	if err != nil {
		return err
	}

	err = l.mutate(func(doc *models.Document) error {
		*doc = partial.MergeInto(*doc)
		logsChanged := partial.Present[validation.SectionSmokeLogs] || partial.Present[validation.SectionCravingLogs]
		if logsChanged && !partial.Present[validation.SectionDailyStats] {
			rebuildStats(doc)
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger.Info("Imported state", "smokeLogs", len(l.doc.SmokeLogs), "cravingLogs", len(l.doc.CravingLogs))
	return nil
}

// Reset replaces the state with the first-run document and persists it.
func (l *Ledger) Reset() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	err := l.mutate(func(doc *models.Document) error {
		*doc = models.NewDocument()
		return nil
	})
	if err == nil {
		l.loadIssue = nil
	}
	return err
}

// Snapshot returns a deep copy of the current document.
func (l *Ledger) Snapshot() models.Document {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.doc.Clone()
}
