package uploads

import (
	"context"
	"sort"
	"time"
)

// InMemoryRepository backs handler and service tests.
type InMemoryRepository struct {
	uploads map[int]*MenuUpload
	nextID  int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		uploads: make(map[int]*MenuUpload),
		nextID:  1,
	}
}

func (r *InMemoryRepository) Save(ctx context.Context, upload *MenuUpload) error {
	upload.ID = r.nextID
	r.nextID++
	if upload.CreatedAt.IsZero() {
		upload.CreatedAt = time.Now().UTC()
	}
	stored := *upload
	r.uploads[upload.ID] = &stored
	return nil
}

func (r *InMemoryRepository) List(ctx context.Context, userID, limit int) ([]MenuUpload, error) {
	var result []MenuUpload
	for _, u := range r.uploads {
		if u.UserID == userID {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *InMemoryRepository) Get(ctx context.Context, userID, id int) (*MenuUpload, error) {
	u, ok := r.uploads[id]
	if !ok || u.UserID != userID {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *InMemoryRepository) Rename(ctx context.Context, userID, id int, name string) error {
	u, ok := r.uploads[id]
	if !ok || u.UserID != userID {
		return ErrNotFound
	}
	u.UploadName = name
	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, userID, id int) error {
	u, ok := r.uploads[id]
	if !ok || u.UserID != userID {
		return ErrNotFound
	}
	delete(r.uploads, id)
	return nil
}
