package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/viant/ossim/runtime/process"
	"github.com/viant/ossim/service/dao"
	"github.com/viant/ossim/service/dao/criteria"
)

// Service implements the in-memory process registry. Every process ever
// saved is retained, including terminated ones, and List returns them in pid
// order. Records are stored by reference: the registry owns the live process.
type Service struct {
	processes map[int]*process.Process
	mux       sync.RWMutex
}

var _ dao.Service[int, process.Process] = (*Service)(nil)

func (s *Service) Save(_ context.Context, p *process.Process) error {
	if p == nil {
		return dao.ErrNilEntity
	}
	if p.PID < 1 {
		return dao.ErrInvalidID
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	s.processes[p.PID] = p
	return nil
}

func (s *Service) Load(_ context.Context, pid int) (*process.Process, error) {
	if pid < 1 {
		return nil, dao.ErrInvalidID
	}
	s.mux.RLock()
	p, ok := s.processes[pid]
	s.mux.RUnlock()
	if !ok {
		return nil, dao.ErrNotFound
	}
	return p, nil
}

func (s *Service) Delete(_ context.Context, pid int) error {
	if pid < 1 {
		return dao.ErrInvalidID
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	if _, ok := s.processes[pid]; !ok {
		return dao.ErrNotFound
	}
	delete(s.processes, pid)
	return nil
}

func (s *Service) List(_ context.Context, parameters ...*dao.Parameter) ([]*process.Process, error) {
	s.mux.RLock()
	out := make([]*process.Process, 0, len(s.processes))
	for _, p := range s.processes {
		if !criteria.FilterByState(p.GetState(), parameters) {
			continue
		}
		out = append(out, p)
	}
	s.mux.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].PID < out[j].PID })
	return out, nil
}

func New() *Service {
	return &Service{processes: map[int]*process.Process{}}
}
