package storage

// NewRepository создает новый экземпляр Repository.
// Без DB или Cache соответствующий репозиторий остается nil.
func NewRepository(deps *RepositoryDependencies) *Repository {
	repo := &Repository{}
	if deps.DB != nil {
		repo.Catalog = NewCatalogRepository(deps)
	}
	if deps.Cache != nil {
		repo.Totals = NewTotalsCache(deps)
	}
	return repo
}

// Cache types used in metrics labels
const (
	CacheTypeTotals = "loadout_totals"
)
