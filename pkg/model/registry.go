package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/prakriti-health/prakriti-api/pkg/logging"
)

// Registry owns every trained artifact for the process lifetime. Loads
// are lazy, cached forever, and collapsed so that N concurrent first
// touches of the same key hit the disk once. A missing artifact file is
// a normal absence: it is cached as such and the caller degrades.
// New artifacts require a process restart.
type Registry struct {
	dir    string
	logger *logging.Logger

	mu      sync.RWMutex
	models  map[string]Classifier
	labels  map[Task]*LabelEncoder
	scalers map[Task]*Scaler

	group singleflight.Group
	loads int64 // disk reads performed, observable in tests
}

// NewRegistry creates a registry reading artifacts from dir
func NewRegistry(dir string, logger *logging.Logger) *Registry {
	return &Registry{
		dir:     dir,
		logger:  logger,
		models:  make(map[string]Classifier),
		labels:  make(map[Task]*LabelEncoder),
		scalers: make(map[Task]*Scaler),
	}
}

// Model returns the cached classifier for (task, algorithm), loading it
// on first access. The second return is false when the artifact is not
// deployed or failed to parse.
func (r *Registry) Model(task Task, algo Algorithm) (Classifier, bool) {
	key := fmt.Sprintf("model/%s/%s", task, algo)

	r.mu.RLock()
	if clf, ok := r.models[key]; ok {
		r.mu.RUnlock()
		return clf, clf != nil
	}
	r.mu.RUnlock()

	v, _, _ := r.group.Do(key, func() (any, error) {
		// A racing caller may have populated the cache while this
		// goroutine waited on the flight group
		r.mu.RLock()
		if clf, ok := r.models[key]; ok {
			r.mu.RUnlock()
			return clf, nil
		}
		r.mu.RUnlock()

		clf := r.loadModel(task, algo)
		r.mu.Lock()
		r.models[key] = clf
		r.mu.Unlock()
		return clf, nil
	})

	clf, _ := v.(Classifier)
	return clf, clf != nil
}

// Labels returns the label encoder for a task, if deployed
func (r *Registry) Labels(task Task) (*LabelEncoder, bool) {
	key := fmt.Sprintf("labels/%s", task)

	r.mu.RLock()
	if le, ok := r.labels[task]; ok {
		r.mu.RUnlock()
		return le, le != nil
	}
	r.mu.RUnlock()

	v, _, _ := r.group.Do(key, func() (any, error) {
		r.mu.RLock()
		if le, ok := r.labels[task]; ok {
			r.mu.RUnlock()
			return le, nil
		}
		r.mu.RUnlock()

		le := &LabelEncoder{}
		if !r.readArtifact(fmt.Sprintf("%s_labels.json", task), le) || len(le.Classes) == 0 {
			le = nil
		}
		r.mu.Lock()
		r.labels[task] = le
		r.mu.Unlock()
		return le, nil
	})

	le, _ := v.(*LabelEncoder)
	return le, le != nil
}

// ScalerFor returns the feature scaler for a task, if deployed
func (r *Registry) ScalerFor(task Task) (*Scaler, bool) {
	key := fmt.Sprintf("scaler/%s", task)

	r.mu.RLock()
	if sc, ok := r.scalers[task]; ok {
		r.mu.RUnlock()
		return sc, sc != nil
	}
	r.mu.RUnlock()

	v, _, _ := r.group.Do(key, func() (any, error) {
		r.mu.RLock()
		if sc, ok := r.scalers[task]; ok {
			r.mu.RUnlock()
			return sc, nil
		}
		r.mu.RUnlock()

		sc := &Scaler{}
		if !r.readArtifact(fmt.Sprintf("%s_scaler.json", task), sc) || len(sc.Mean) == 0 {
			sc = nil
		}
		r.mu.Lock()
		r.scalers[task] = sc
		r.mu.Unlock()
		return sc, nil
	})

	sc, _ := v.(*Scaler)
	return sc, sc != nil
}

// Prewarm touches every artifact key so the hot path never pays a disk
// read. Deployments call this during startup.
func (r *Registry) Prewarm() {
	for _, task := range []Task{TaskDosha, TaskCancer} {
		for _, algo := range Priority {
			if _, ok := r.Model(task, algo); ok {
				r.logger.Info("model artifact loaded",
					logging.String("task", string(task)),
					logging.String("algorithm", string(algo)),
					logging.Component("registry"))
			}
		}
		r.Labels(task)
		r.ScalerFor(task)
	}
}

// loadModel reads and validates one classifier artifact. Any failure
// beyond "file does not exist" is logged; both cases cache as absent.
func (r *Registry) loadModel(task Task, algo Algorithm) Classifier {
	name := fmt.Sprintf("%s_%s.json", task, algo)

	var clf interface {
		Classifier
		Validate() error
	}
	switch algo {
	case AlgoRandomForest:
		clf = &Forest{}
	case AlgoSVM:
		clf = &LinearSVM{}
	case AlgoLogistic:
		clf = &Logistic{}
	default:
		return nil
	}

	if !r.readArtifact(name, clf) {
		return nil
	}
	if err := clf.Validate(); err != nil {
		r.logger.Error("model artifact failed validation", err,
			logging.String("artifact", name),
			logging.Component("registry"))
		return nil
	}
	return clf
}

// readArtifact reads and unmarshals one artifact file. Returns false
// when the file is missing or unreadable.
func (r *Registry) readArtifact(name string, out any) bool {
	atomic.AddInt64(&r.loads, 1)

	data, err := os.ReadFile(filepath.Join(r.dir, name))
	if err != nil {
		if !os.IsNotExist(err) {
			r.logger.Error("failed to read artifact", err,
				logging.String("artifact", name),
				logging.Component("registry"))
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		r.logger.Error("failed to parse artifact", err,
			logging.String("artifact", name),
			logging.Component("registry"))
		return false
	}
	return true
}
