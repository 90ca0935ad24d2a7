package journal

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/models"
)

// Notifier delivers a supportive message. Implementations own retries and
// failure handling; the store only logs a returned error.
type Notifier interface {
	Notify(title, message string) error
}

// Intn picks a value in [0, n). *rand.Rand satisfies it.
type Intn interface {
	Intn(n int) int
}

type supportConfig struct {
	notifier Notifier
	quotes   []string
	title    string
	rand     Intn
}

func defaultSupportConfig() supportConfig {
	return supportConfig{
		quotes: append([]string(nil), constants.DefaultSupportQuotes...),
		title:  constants.SupportTitle,
		rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

type Option func(*Store)

// WithNotifier sets where bad-mood support messages are sent. Without one,
// adding a bad mood sends nothing.
func WithNotifier(n Notifier) Option {
	return func(s *Store) {
		s.support.notifier = n
	}
}

// WithQuotes sets the messages a support notification is drawn from.
func WithQuotes(quotes []string) Option {
	return func(s *Store) {
		s.support.quotes = append([]string(nil), quotes...)
	}
}

func WithSupportTitle(title string) Option {
	return func(s *Store) {
		s.support.title = title
	}
}

// WithRand replaces the random source used to pick a quote.
func WithRand(r Intn) Option {
	return func(s *Store) {
		if r != nil {
			s.support.rand = r
		}
	}
}

// *rand.Rand is not safe for concurrent use.
func (s *Store) pickQuote() string {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.support.quotes[s.support.rand.Intn(len(s.support.quotes))]
}

func (s *Store) requestSupport(entry models.MoodEntry) {
	cfg := s.support
	if cfg.notifier == nil || len(cfg.quotes) == 0 {
		return
	}

	quote := s.pickQuote()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Support notification panicked", "entry", entry.ID, "panic", fmt.Sprint(r))
		}
	}()
	if err := cfg.notifier.Notify(cfg.title, quote); err != nil {
		logger.Warn("Support notification failed", "entry", entry.ID, "error", err)
		return
	}
	logger.Info("Support notification requested", "entry", entry.ID)
}
