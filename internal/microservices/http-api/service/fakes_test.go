package service

import (
	"sync"

	"reviewhub/internal/microservices/http-api/models"
	"reviewhub/internal/microservices/http-api/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes so service tests run without a database. They
// mirror the GORM implementations' contract, including returning
// gorm.ErrRecordNotFound for missing rows.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]models.User)}
}

func (f *fakeUserRepo) Create(user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) FindByID(id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews map[string]models.Review
	order   []string
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[string]models.Review)}
}

func (f *fakeReviewRepo) Create(review *models.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if _, exists := f.reviews[review.ID]; !exists {
		f.order = append(f.order, review.ID)
	}
	f.reviews[review.ID] = *review
	return nil
}

func (f *fakeReviewRepo) Update(review *models.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reviews[review.ID] = *review
	return nil
}

func (f *fakeReviewRepo) Delete(reviewID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.reviews[reviewID]; !ok {
		return repository.ErrNotFound
	}
	delete(f.reviews, reviewID)
	filtered := f.order[:0]
	for _, id := range f.order {
		if id != reviewID {
			filtered = append(filtered, id)
		}
	}
	f.order = filtered
	return nil
}

func (f *fakeReviewRepo) GetByID(reviewID string) (*models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	review, ok := f.reviews[reviewID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &review, nil
}

func (f *fakeReviewRepo) GetAll() ([]models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := make([]models.Review, 0, len(f.order))
	for _, id := range f.order {
		all = append(all, f.reviews[id])
	}
	return all, nil
}

func (f *fakeReviewRepo) GetByAuthor(authorID string) ([]models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := make([]models.Review, 0)
	for _, id := range f.order {
		if f.reviews[id].AuthorID == authorID {
			all = append(all, f.reviews[id])
		}
	}
	return all, nil
}

type fakeRatingRepo struct {
	mu      sync.Mutex
	nextID  int64
	ratings map[int64]models.Rating
}

func newFakeRatingRepo() *fakeRatingRepo {
	return &fakeRatingRepo{ratings: make(map[int64]models.Rating)}
}

func (f *fakeRatingRepo) Create(rating *models.Rating) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.ratings {
		if r.UserID == rating.UserID && r.ReviewID == rating.ReviewID {
			// the composite unique index rejects the second row
			return gorm.ErrDuplicatedKey
		}
	}
	f.nextID++
	rating.ID = f.nextID
	f.ratings[rating.ID] = *rating
	return nil
}

func (f *fakeRatingRepo) Update(rating *models.Rating) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ratings[rating.ID] = *rating
	return nil
}

func (f *fakeRatingRepo) GetByUserAndReview(userID, reviewID string) (*models.Rating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rating := range f.ratings {
		if rating.UserID == userID && rating.ReviewID == reviewID {
			r := rating
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRatingRepo) GetByReview(reviewID string) ([]models.Rating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := make([]models.Rating, 0)
	for id := int64(1); id <= f.nextID; id++ {
		if rating, ok := f.ratings[id]; ok && rating.ReviewID == reviewID {
			all = append(all, rating)
		}
	}
	return all, nil
}

func (f *fakeRatingRepo) GetAll() ([]models.Rating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := make([]models.Rating, 0, len(f.ratings))
	for id := int64(1); id <= f.nextID; id++ {
		if rating, ok := f.ratings[id]; ok {
			all = append(all, rating)
		}
	}
	return all, nil
}

func (f *fakeRatingRepo) count(userID, reviewID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, rating := range f.ratings {
		if rating.UserID == userID && rating.ReviewID == reviewID {
			n++
		}
	}
	return n
}

type fakeLikeRepo struct {
	mu     sync.Mutex
	nextID int64
	likes  map[int64]models.Like
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{likes: make(map[int64]models.Like)}
}

func (f *fakeLikeRepo) Create(like *models.Like) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.likes {
		if l.UserID == like.UserID && l.ReviewID == like.ReviewID {
			return gorm.ErrDuplicatedKey
		}
	}
	f.nextID++
	like.ID = f.nextID
	f.likes[like.ID] = *like
	return nil
}

func (f *fakeLikeRepo) Delete(userID, reviewID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, like := range f.likes {
		if like.UserID == userID && like.ReviewID == reviewID {
			delete(f.likes, id)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeLikeRepo) ExistsByUserAndReview(userID, reviewID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, like := range f.likes {
		if like.UserID == userID && like.ReviewID == reviewID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLikeRepo) CountByReview(reviewID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, like := range f.likes {
		if like.ReviewID == reviewID {
			count++
		}
	}
	return count, nil
}

type fakeRefreshTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]models.RefreshToken // keyed by token value
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[string]models.RefreshToken)}
}

func (f *fakeRefreshTokenRepo) Create(token *models.RefreshToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token.Token] = *token
	return nil
}

func (f *fakeRefreshTokenRepo) FindByToken(token string) (*models.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.tokens[token]
	if !ok || stored.Revoked {
		return nil, gorm.ErrRecordNotFound
	}
	t := stored
	return &t, nil
}

func (f *fakeRefreshTokenRepo) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for token, stored := range f.tokens {
		if stored.ID == id {
			delete(f.tokens, token)
			return nil
		}
	}
	return nil
}

func (f *fakeRefreshTokenRepo) Revoke(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.tokens[token]
	if !ok {
		return nil
	}
	stored.Revoked = true
	f.tokens[token] = stored
	return nil
}
