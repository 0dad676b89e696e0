// Package module resuelve la activación de módulos SaaS por empresa.
package module

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/trazabilidad-api/internal/domain/repository"
)

// Service verifica qué módulos SaaS tiene activos una empresa.
// Es el único punto de la aplicación que conoce la lógica de activación de módulos.
// Los resultados se guardan ttl para no consultar la DB en cada reporte; los errores no se guardan.
type Service struct {
	companyRepo repository.CompanyRepository
	ttl         time.Duration
	now         func() time.Time

	mu    sync.Mutex
	cache map[cacheKey]cacheEntry
}

type cacheKey struct{ companyID, module string }

type cacheEntry struct {
	active  bool
	expires time.Time
}

// NewService construye el servicio de módulos. ttl <= 0 desactiva la caché.
func NewService(companyRepo repository.CompanyRepository, ttl time.Duration) *Service {
	return &Service{
		companyRepo: companyRepo,
		ttl:         ttl,
		now:         time.Now,
		cache:       make(map[cacheKey]cacheEntry),
	}
}

// HasActiveModule informa si la empresa tiene el módulo activo y sin vencer.
// Devuelve false (sin error) si la empresa no tiene el módulo contratado.
// Devuelve error solo ante fallos de infraestructura (DB caída, timeout, etc.).
func (s *Service) HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error) {
	if companyID == "" || moduleName == "" {
		return false, fmt.Errorf("module: companyID y moduleName son obligatorios")
	}
	key := cacheKey{companyID, moduleName}
	if s.ttl > 0 {
		s.mu.Lock()
		e, ok := s.cache[key]
		s.mu.Unlock()
		if ok && s.now().Before(e.expires) {
			return e.active, nil
		}
	}

	active, err := s.companyRepo.HasActiveModule(ctx, companyID, moduleName)
	if err != nil {
		return false, err
	}
	if s.ttl > 0 {
		s.mu.Lock()
		s.cache[key] = cacheEntry{active: active, expires: s.now().Add(s.ttl)}
		s.mu.Unlock()
	}
	return active, nil
}
