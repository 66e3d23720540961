package dashboard

import (
	"context"
	"net/http"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"shelter-dashboard/internal/domain/rescue"
	"shelter-dashboard/internal/platform/logger"
)

const (
	SessionCookie      = "dashboard_session"
	DefaultMaxSessions = 256
)

// Session es el estado de dashboard de un navegador: su View y los paneles ligados.
type Session struct {
	ID     string
	View   *View
	Panels *Panels
}

// Sessions mantiene una View por cookie, acotado por LRU.
type Sessions struct {
	cache    *lru.Cache[string, *Session]
	fetcher  Fetcher
	pageSize int
	log      logger.Logger

	mu sync.Mutex
}

func NewSessions(fetcher Fetcher, pageSize, max int, log logger.Logger) (*Sessions, error) {
	if max <= 0 {
		max = DefaultMaxSessions
	}
	if log == nil {
		log = logger.Nop()
	}
	cache, err := lru.New[string, *Session](max)
	if err != nil {
		return nil, err
	}
	return &Sessions{
		cache:    cache,
		fetcher:  fetcher,
		pageSize: pageSize,
		log:      log.With(map[string]any{"component": "dashboard.sessions"}),
	}, nil
}

// Get devuelve la sesión de id o crea una nueva si no existe (o fue desalojada).
func (s *Sessions) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if sess, ok := s.cache.Get(id); ok {
			return sess, false
		}
	}

	v := NewView(s.fetcher, s.pageSize)
	sess := &Session{
		ID:     uuid.NewString(),
		View:   v,
		Panels: Bind(v),
	}
	s.cache.Add(sess.ID, sess)
	s.log.Debug("session created", map[string]any{"session": sess.ID, "active": s.cache.Len()})
	return sess, true
}

func (s *Sessions) Len() int {
	return s.cache.Len()
}

// FromRequest resuelve la sesión por cookie y, si es nueva, setea la cookie.
func (s *Sessions) FromRequest(w http.ResponseWriter, r *http.Request) *Session {
	var id string
	if c, err := r.Cookie(SessionCookie); err == nil {
		id = c.Value
	}

	sess, created := s.Get(id)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    sess.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return sess
}

// Load vuelve a pedir datos en cada request. label vacío recarga el filtro
// actual ("All" si la sesión es nueva). Un cambio de filtro arranca en la
// página 0; el mismo filtro conserva orden, página y fila.
func (sess *Session) Load(ctx context.Context, label string) error {
	if label == "" {
		return sess.View.Refresh(ctx)
	}
	d, err := rescue.Resolve(label)
	if err != nil {
		return err
	}
	if snap := sess.View.Snapshot(); snap.Loaded && snap.Filter == d.Label {
		return sess.View.Refresh(ctx)
	}
	return sess.View.SelectFilter(ctx, d.Label)
}
