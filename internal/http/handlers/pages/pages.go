// Package pages реализует HTTP-обработчик страниц веб-интерфейса.
//
// Обработчик отдает статические файлы клиентского приложения, а для
// путей навигации возвращает оболочку SPA: решение о допуске к пути
// уже принял шлюз доступа выше по цепочке.
package pages

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Handler отдает статические файлы и оболочку клиентского приложения.
type Handler struct {
	log       *slog.Logger
	staticDir string
}

// New создает новый Handler, обслуживающий файлы из staticDir.
func New(log *slog.Logger, staticDir string) *Handler {
	return &Handler{
		log:       log,
		staticDir: staticDir,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(h.staticDir, filepath.Clean(strings.TrimPrefix(r.URL.Path, "/")))
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		http.ServeFile(w, r, path)
		return
	}
	http.ServeFile(w, r, filepath.Join(h.staticDir, "index.html"))
}
