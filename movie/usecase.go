package movie

import "context"

type Service interface {
	FindAll(ctx context.Context, title string, page PageRequest) (Page, error)
	FindByID(ctx context.Context, id int64) (Movie, error)
	Insert(ctx context.Context, m Movie) (Movie, error)
	Update(ctx context.Context, id int64, m Movie) (Movie, error)
	Delete(ctx context.Context, id int64) error
}

type Repository interface {
	SearchByTitle(ctx context.Context, title string, page PageRequest) (Page, error)
	GetByID(ctx context.Context, id int64) (Movie, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Save(ctx context.Context, m Movie) (Movie, error)
	Delete(ctx context.Context, id int64) error
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

// FindAll pages through movies whose title contains the filter. An empty
// filter matches everything; the result page may be empty but is never
// an error on its own.
func (uc *Usecase) FindAll(ctx context.Context, title string, page PageRequest) (Page, error) {
	return uc.r.SearchByTitle(ctx, title, page)
}

func (uc *Usecase) FindByID(ctx context.Context, id int64) (Movie, error) {
	return uc.r.GetByID(ctx, id)
}

func (uc *Usecase) Insert(ctx context.Context, m Movie) (Movie, error) {
	if err := m.Validate(); err != nil {
		return Movie{}, err
	}
	m.ID = 0
	m.Count = 0
	m.Score = 0
	m.Scores = nil
	return uc.r.Save(ctx, m)
}

// Update overwrites the mutable fields of an existing movie. The eager
// fetch makes a missing id fail before anything is persisted.
func (uc *Usecase) Update(ctx context.Context, id int64, m Movie) (Movie, error) {
	if err := m.Validate(); err != nil {
		return Movie{}, err
	}

	existing, err := uc.r.GetByID(ctx, id)
	if err != nil {
		return Movie{}, err
	}

	existing.Title = m.Title
	existing.Year = m.Year
	existing.Image = m.Image
	return uc.r.Save(ctx, existing)
}

// Delete removes a movie by id. A missing id is reported as not found
// before deletion is attempted; a movie still referenced by dependent
// rows surfaces as ErrMovieReferenced from the repository.
func (uc *Usecase) Delete(ctx context.Context, id int64) error {
	ok, err := uc.r.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrMovieNotFound
	}
	return uc.r.Delete(ctx, id)
}
