// Package repotest provides an in-memory store that satisfies the repository
// interfaces, for tests that exercise services and handlers without postgres.
package repotest

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/lshigami/trivia-api/internal/model"
	"gorm.io/gorm"
)

// Store keeps questions and categories in maps guarded by one mutex. When
// Err is set every call fails with it.
type Store struct {
	mu         sync.Mutex
	nextID     uint
	questions  map[uint]model.Question
	categories map[uint]model.Category

	Err error
	// CreateErr fails only Create, to simulate a rejected insert.
	CreateErr error
}

func NewStore() *Store {
	return &Store{
		nextID:     1,
		questions:  make(map[uint]model.Question),
		categories: make(map[uint]model.Category),
	}
}

// AddCategory inserts a category with a fixed id.
func (s *Store) AddCategory(id uint, label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[id] = model.Category{ID: id, Type: label}
}

// AddQuestion inserts a question and returns its assigned id.
func (s *Store) AddQuestion(question, answer, category string, difficulty int) uint {
	q := model.Question{Question: question, Answer: answer, Category: category, Difficulty: difficulty}
	_ = s.create(&q)
	return q.ID
}

func (s *Store) Questions() *Questions   { return &Questions{s} }
func (s *Store) Categories() *Categories { return &Categories{s} }

func (s *Store) create(q *model.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	q.ID = s.nextID
	s.nextID++
	s.questions[q.ID] = *q
	return nil
}

func (s *Store) sortedQuestions(keep func(model.Question) bool) []model.Question {
	out := make([]model.Question, 0, len(s.questions))
	for _, q := range s.questions {
		if keep == nil || keep(q) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Questions implements repository.QuestionRepository.
type Questions struct{ s *Store }

func (r *Questions) Create(question *model.Question) error {
	if r.s.Err != nil {
		return r.s.Err
	}
	if r.s.CreateErr != nil {
		return r.s.CreateErr
	}
	return r.s.create(question)
}

func (r *Questions) FindByID(id uint) (*model.Question, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	q, ok := r.s.questions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &q, nil
}

func (r *Questions) FindPage(offset, limit int) ([]model.Question, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	all := r.s.sortedQuestions(nil)
	if offset >= len(all) {
		return []model.Question{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *Questions) Count() (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return 0, r.s.Err
	}
	return int64(len(r.s.questions)), nil
}

func (r *Questions) SearchByText(term string) ([]model.Question, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	needle := strings.ToLower(term)
	return r.s.sortedQuestions(func(q model.Question) bool {
		return strings.Contains(strings.ToLower(q.Question), needle)
	}), nil
}

func (r *Questions) FindByCategory(category string) ([]model.Question, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	return r.s.sortedQuestions(func(q model.Question) bool {
		return q.Category == category
	}), nil
}

func (r *Questions) FindCandidateIDs(category string, excludeIDs []uint) ([]uint, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	excluded := make(map[uint]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}
	var ids []uint
	for _, q := range r.s.sortedQuestions(nil) {
		if category != "" && q.Category != category {
			continue
		}
		if _, skip := excluded[q.ID]; skip {
			continue
		}
		ids = append(ids, q.ID)
	}
	return ids, nil
}

func (r *Questions) Delete(id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if _, ok := r.s.questions[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.s.questions, id)
	return nil
}

// Categories implements repository.CategoryRepository.
type Categories struct{ s *Store }

func (r *Categories) FindAll() ([]model.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make([]model.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Categories) FindByID(id uint) (*model.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	c, ok := r.s.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

// Ping implements repository.HealthRepository and fails with Err when set.
func (s *Store) Ping() error {
	if s.Err != nil {
		return s.Err
	}
	return nil
}

// ErrBroken is a convenience failure for tests.
var ErrBroken = errors.New("store unavailable")
