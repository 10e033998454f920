package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"wayfarer/internal/models/request_models"
	"wayfarer/internal/models/response_models"
	"wayfarer/pkg/utils"
)

type JobStatus string

const (
	JobPending JobStatus = "pending"
	JobRunning JobStatus = "running"
	JobDone    JobStatus = "done"
	JobError   JobStatus = "error"
)

// JobStep is one progress line recorded while a job runs.
type JobStep struct {
	Seq     int       `json:"seq"`
	At      time.Time `json:"at"`
	Message string    `json:"message"`
}

// Job tracks one asynchronous itinerary generation.
type Job struct {
	ID        string                             `json:"job_id"`
	Status    JobStatus                          `json:"status"`
	CreatedAt time.Time                          `json:"created_at"`
	UpdatedAt time.Time                          `json:"updated_at"`
	Steps     []JobStep                          `json:"steps"`
	Result    *response_models.ItineraryResponse `json:"result,omitempty"`
	Error     string                             `json:"error,omitempty"`
}

// JobServiceInterface runs itinerary generations in the background and
// serves their status. State is in-memory only; jobs do not survive a
// restart.
type JobServiceInterface interface {
	Submit(req *request_models.ItineraryRequest) (*Job, error)
	Get(id string) (*Job, error)
}

const (
	defaultJobWorkers = 4
	defaultJobTTL     = 30 * time.Minute
	defaultJobTimeout = 3 * time.Minute
)

type JobService struct {
	mu        sync.Mutex
	jobs      map[string]*Job
	sem       chan struct{}
	generator ItineraryServiceInterface
	ttl       time.Duration
	timeout   time.Duration
}

func NewJobService(generator ItineraryServiceInterface) JobServiceInterface {
	return &JobService{
		jobs:      make(map[string]*Job),
		sem:       make(chan struct{}, defaultJobWorkers),
		generator: generator,
		ttl:       defaultJobTTL,
		timeout:   defaultJobTimeout,
	}
}

// Submit registers a job and schedules it on the worker pool. The returned
// snapshot has status pending; poll Get for progress.
func (s *JobService) Submit(req *request_models.ItineraryRequest) (*Job, error) {
	now := time.Now().UTC()
	job := &Job{
		ID:        uuid.NewString(),
		Status:    JobPending,
		CreatedAt: now,
		UpdatedAt: now,
		Steps:     []JobStep{},
	}

	s.mu.Lock()
	s.pruneLocked(now)
	s.jobs[job.ID] = job
	snapshot := cloneJob(job)
	s.mu.Unlock()

	go s.run(job.ID, req)
	return snapshot, nil
}

// Get returns a point-in-time copy of the job.
func (s *JobService) Get(id string) (*Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, utils.ErrJobNotFound
	}
	return cloneJob(job), nil
}

func (s *JobService) run(id string, req *request_models.ItineraryRequest) {
	s.sem <- struct{}{}
	defer func() { <-s.sem }()

	s.setStatus(id, JobRunning)
	s.addStep(id, "generation started")

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	result, err := s.generator.Generate(ctx, req, func(message string) {
		s.addStep(id, message)
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		// pruned while running; nothing left to report to
		return
	}
	job.UpdatedAt = time.Now().UTC()
	if err != nil {
		job.Status = JobError
		job.Error = err.Error()
		log.Printf("Job %s failed: %v", id, err)
		return
	}
	job.Status = JobDone
	job.Result = result
}

func (s *JobService) setStatus(id string, status JobStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobs[id]; ok {
		job.Status = status
		job.UpdatedAt = time.Now().UTC()
	}
}

func (s *JobService) addStep(id string, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return
	}
	now := time.Now().UTC()
	job.Steps = append(job.Steps, JobStep{Seq: len(job.Steps) + 1, At: now, Message: message})
	job.UpdatedAt = now
}

// pruneLocked drops finished jobs older than the ttl. Caller holds the lock.
func (s *JobService) pruneLocked(now time.Time) {
	for id, job := range s.jobs {
		if job.Status != JobDone && job.Status != JobError {
			continue
		}
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

func cloneJob(job *Job) *Job {
	c := *job
	c.Steps = append([]JobStep(nil), job.Steps...)
	return &c
}
