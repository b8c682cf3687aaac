package app

import (
	"github.com/sirupsen/logrus"

	"github.com/five82/trawl/internal/browser"
	"github.com/five82/trawl/internal/watch"
)

// startWatcher watches host's stores in the background. When the watcher
// cannot start, live reload is off and the UI still works on demand.
func startWatcher(host browser.Host, log logrus.FieldLogger) (<-chan browser.Source, func()) {
	w, err := watch.New(host.StorePaths(), watch.DefaultDebounce, log)
	if err != nil {
		log.WithError(err).Warn("live reload disabled")
		return nil, func() {}
	}
	return w.Events(), func() {
		if err := w.Close(); err != nil {
			log.WithError(err).Warn("close watcher")
		}
	}
}
