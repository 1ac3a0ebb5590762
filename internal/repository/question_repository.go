package repository

import (
	"strings"

	"github.com/lshigami/trivia-api/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(question *model.Question) error
	FindByID(id uint) (*model.Question, error)
	FindPage(offset, limit int) ([]model.Question, error)
	Count() (int64, error)
	SearchByText(term string) ([]model.Question, error)
	FindByCategory(category string) ([]model.Question, error)
	// FindCandidateIDs returns the ids of questions in category (any category
	// when empty) that are not listed in excludeIDs.
	FindCandidateIDs(category string, excludeIDs []uint) ([]uint, error)
	// Delete removes the row and returns gorm.ErrRecordNotFound when no row
	// was removed, including when a concurrent delete got there first.
	Delete(id uint) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question) error {
	// Transaction rolls back on error so a failed insert leaves nothing behind.
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(question).Error
	})
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindPage(offset, limit int) ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.Order("id ASC").Offset(offset).Limit(limit).Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Question{}).Count(&count).Error
	return count, err
}

func (r *questionRepository) SearchByText(term string) ([]model.Question, error) {
	var questions []model.Question
	pattern := "%" + escapeLike(term) + "%"
	if err := r.db.Where("question ILIKE ?", pattern).Order("id ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) FindByCategory(category string) ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.Where("category = ?", category).Order("id ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) FindCandidateIDs(category string, excludeIDs []uint) ([]uint, error) {
	query := r.db.Model(&model.Question{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if len(excludeIDs) > 0 {
		query = query.Where("id NOT IN ?", excludeIDs)
	}
	var ids []uint
	if err := query.Order("id ASC").Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *questionRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var question model.Question
		if err := tx.First(&question, id).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Question{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// escapeLike makes % and _ in user input match literally. Postgres uses
// backslash as the default LIKE escape character.
func escapeLike(term string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
}
