package workers

// Workers runs a fixed list of workers one after another.
type Workers struct {
	workers []Worker
}

// NewWorkers returns an aggregate running ws in order.
func NewWorkers(ws ...Worker) *Workers {
	return &Workers{workers: ws}
}

// Add appends a worker.
func (w *Workers) Add(worker Worker) {
	w.workers = append(w.workers, worker)
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
