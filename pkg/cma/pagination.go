package cma

import (
	"context"
)

// CollectionClient lists one page of resources at a path. Resource clients
// implement it, which lets the pagination helpers work against any of
// them.
type CollectionClient[T any] interface {
	ListWithPath(ctx context.Context, path string, params *QueryParams) (*Collection[T], error)
}

// PaginationOptions control the page-walking helpers.
type PaginationOptions struct {
	// PageSize is the limit sent per page request.
	PageSize int
	// MaxPages caps how many pages are fetched; 0 means no cap.
	MaxPages int
}

// DefaultPaginationOptions returns sensible defaults.
func DefaultPaginationOptions() *PaginationOptions {
	return &PaginationOptions{PageSize: 100}
}

// CollectionIterator walks a paginated listing item by item, re-issuing
// the query with an adjusted skip as pages are exhausted. The server never
// pushes the next page; the iterator pulls it.
type CollectionIterator[T any] struct {
	ctx    context.Context
	client CollectionClient[T]
	path   string
	params *QueryParams

	page    *Collection[T]
	index   int
	fetched int
	done    bool
}

// NewCollectionIterator creates an iterator over a listing.
func NewCollectionIterator[T any](ctx context.Context, client CollectionClient[T], path string, params *QueryParams) *CollectionIterator[T] {
	if params == nil {
		params = NewQueryParams()
	}

	return &CollectionIterator[T]{
		ctx:    ctx,
		client: client,
		path:   path,
		params: params,
	}
}

// HasNext reports whether another item is available without fetching it
// eagerly past page boundaries.
func (it *CollectionIterator[T]) HasNext() bool {
	if it.page == nil {
		return !it.done
	}

	if it.index < len(it.page.Items) {
		return true
	}

	return !it.done
}

// Next returns the next item, fetching the following page when the current
// one is exhausted. It returns ErrNoMoreItems past the end.
func (it *CollectionIterator[T]) Next() (T, error) {
	var zero T

	if it.page == nil || it.index >= len(it.page.Items) {
		if err := it.fetchPage(); err != nil {
			return zero, err
		}
	}

	if it.page == nil || it.index >= len(it.page.Items) {
		return zero, ErrNoMoreItems
	}

	item := it.page.Items[it.index]
	it.index++

	return item, nil
}

// All fetches every remaining item into one slice.
func (it *CollectionIterator[T]) All() ([]T, error) {
	var all []T

	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			if err == ErrNoMoreItems {
				break
			}

			return nil, err
		}

		all = append(all, item)
	}

	return all, nil
}

// ForEach applies fn to every remaining item, stopping on the first error.
func (it *CollectionIterator[T]) ForEach(fn func(T) error) error {
	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			if err == ErrNoMoreItems {
				return nil
			}

			return err
		}

		if err := fn(item); err != nil {
			return err
		}
	}

	return nil
}

func (it *CollectionIterator[T]) fetchPage() error {
	if it.done {
		return nil
	}

	params := *it.params
	params.Skip = it.fetched

	page, err := it.client.ListWithPath(it.ctx, it.path, &params)
	if err != nil {
		return err
	}

	it.page = page
	it.index = 0
	it.fetched += len(page.Items)

	// Reaching the reported total exhausts the listing; an empty page means
	// the same even when the total disagrees.
	it.done = len(page.Items) == 0 || it.fetched >= page.Total

	return nil
}

// FetchAllPages collects every page of a listing into one slice.
func FetchAllPages[T any](ctx context.Context, client CollectionClient[T], path string, params *QueryParams, options *PaginationOptions) ([]T, error) {
	if options == nil {
		options = DefaultPaginationOptions()
	}

	if params == nil {
		params = NewQueryParams()
	}

	var all []T

	skip := params.Skip
	pages := 0

	for {
		page := *params
		page.Skip = skip

		if options.PageSize > 0 {
			page.Limit = options.PageSize
		}

		result, err := client.ListWithPath(ctx, path, &page)
		if err != nil {
			return nil, err
		}

		all = append(all, result.Items...)
		skip += len(result.Items)
		pages++

		if len(result.Items) == 0 || skip >= result.Total {
			break
		}

		if options.MaxPages > 0 && pages >= options.MaxPages {
			break
		}
	}

	return all, nil
}

// PageResult is one page delivered by StreamPages.
type PageResult[T any] struct {
	Items []T
	Err   error
}

// StreamPages walks a listing page by page, delivering each page on the
// returned channel. The channel closes after the last page or the first
// error.
func StreamPages[T any](ctx context.Context, client CollectionClient[T], path string, params *QueryParams, options *PaginationOptions) <-chan PageResult[T] {
	if options == nil {
		options = DefaultPaginationOptions()
	}

	if params == nil {
		params = NewQueryParams()
	}

	results := make(chan PageResult[T])

	go func() {
		defer close(results)

		skip := params.Skip
		pages := 0

		for {
			page := *params
			page.Skip = skip

			if options.PageSize > 0 {
				page.Limit = options.PageSize
			}

			result, err := client.ListWithPath(ctx, path, &page)
			if err != nil {
				select {
				case results <- PageResult[T]{Err: err}:
				case <-ctx.Done():
				}

				return
			}

			select {
			case results <- PageResult[T]{Items: result.Items}:
			case <-ctx.Done():
				return
			}

			skip += len(result.Items)
			pages++

			if len(result.Items) == 0 || skip >= result.Total {
				return
			}

			if options.MaxPages > 0 && pages >= options.MaxPages {
				return
			}
		}
	}()

	return results
}
