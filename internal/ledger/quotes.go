package ledger

import (
	"fmt"
	"strings"

	"github.com/julianstephens/quitwise/internal/constants"
	"github.com/julianstephens/quitwise/internal/models"
)

// AddCustomQuote appends a user quote. Custom quotes join the daily rotation.
func (l *Ledger) AddCustomQuote(text, author string) (models.Quote, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	quote := models.Quote{
		ID:       l.newID(),
		Text:     strings.TrimSpace(text),
		Author:   strings.TrimSpace(author),
		IsCustom: true,
	}
	if err := l.validator.Struct(quote); err != nil {
		return models.Quote{}, err
	}

	err := l.mutate(func(doc *models.Document) error {
		doc.Quotes = append(doc.Quotes, quote)
		return nil
	})
	if err != nil {
		return models.Quote{}, err
	}
	return quote, nil
}

// ToggleQuoteFavorite flips isFavorite on the quote with id.
func (l *Ledger) ToggleQuoteFavorite(id string) (models.Quote, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i, q := range l.doc.Quotes {
		if q.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Quote{}, fmt.Errorf("quote %q: %w", id, ErrNotFound)
	}

	err := l.mutate(func(doc *models.Document) error {
		doc.Quotes[idx].IsFavorite = !doc.Quotes[idx].IsFavorite
		return nil
	})
	if err != nil {
		return models.Quote{}, err
	}
	return l.doc.Quotes[idx], nil
}

// Quotes returns the seeded and custom quotes in catalog order.
func (l *Ledger) Quotes() []models.Quote {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.Quote{}, l.doc.Quotes...)
}

// DailyQuote picks today's quote: the byte sum of today's date rendered as
// "Mon Jan 02 2006", modulo the catalog size. It returns ErrNotFound for an empty
// catalog.
func (l *Ledger) DailyQuote() (models.Quote, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.doc.Quotes) == 0 {
		return models.Quote{}, fmt.Errorf("daily quote: %w", ErrNotFound)
	}
	return l.doc.Quotes[QuoteIndex(l.now().In(l.loc).Format(constants.QuoteSeedFormat), len(l.doc.Quotes))], nil
}

// QuoteIndex reduces the byte sum of seed modulo n.
func QuoteIndex(seed string, n int) int {
	sum := 0
	for i := 0; i < len(seed); i++ {
		sum += int(seed[i])
	}
	return sum % n
}
