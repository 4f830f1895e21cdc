package requests

import (
	"context"
	"database/sql"
	"time"

	"github.com/bookswap/bookswap/pkg/access"
	"github.com/bookswap/bookswap/pkg/errcodes"
	"github.com/bookswap/bookswap/pkg/models"
	"github.com/bookswap/bookswap/pkg/store"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun"
)

type ListRequestsOptions struct {
	Limit  *int
	Offset *int
}

type Service struct {
	db       *bun.DB
	policy   RerequestPolicy
	books    *store.Store[models.Book, *models.Book]
	requests *store.Store[models.BookRequest, *models.BookRequest]
}

func NewService(db *bun.DB, policy RerequestPolicy) *Service {
	return &Service{
		db:       db,
		policy:   policy,
		books:    store.New[models.Book](db),
		requests: store.New[models.BookRequest](db),
	}
}

// ListForBook returns the requests made for a book. Only the owner of the book
// may see them.
func (svc *Service) ListForBook(ctx context.Context, bookID int, caller *models.User, opts ListRequestsOptions) ([]*models.BookRequest, int, error) {
	book, err := svc.books.Retrieve(ctx, bookID)
	if err != nil {
		return nil, 0, err
	}
	if !access.CanViewRequests(caller, book) {
		return nil, 0, errcodes.Forbidden("Viewing requests for a book you don't own")
	}

	return svc.requests.List(ctx, store.ListOptions{Limit: opts.Limit, Offset: opts.Offset}, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("br.book_id = ?", bookID)
	})
}

// ListForRequester returns the requests caller has made, with their books.
func (svc *Service) ListForRequester(ctx context.Context, caller *models.User, opts ListRequestsOptions) ([]*models.BookRequest, int, error) {
	return svc.requests.List(ctx, store.ListOptions{Limit: opts.Limit, Offset: opts.Offset}, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Relation("Book").Where("br.requester_id = ?", caller.ID)
	})
}

// CreateRequest opens a pending request by caller for the book. Owners can't
// request their own books, and a book that is already lent can't be
// requested.
func (svc *Service) CreateRequest(ctx context.Context, bookID int, caller *models.User) (*models.BookRequest, error) {
	request := &models.BookRequest{
		BookID:      bookID,
		RequesterID: caller.ID,
		Status:      models.RequestStatusPending,
	}

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		requests := svc.requests.WithTx(tx)

		book, err := svc.books.WithTx(tx).Retrieve(ctx, bookID)
		if err != nil {
			return err
		}
		if access.IsOwner(caller, book) {
			return errcodes.Forbidden("Requesting your own book")
		}

		duplicate, err := requests.Exists(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
			q = q.Where("br.book_id = ?", bookID).Where("br.requester_id = ?", caller.ID)
			if statuses := svc.policy.blockingStatuses(); statuses != nil {
				q = q.Where("br.status IN (?)", bun.In(statuses))
			}
			return q
		})
		if err != nil {
			return err
		}
		if duplicate {
			return errcodes.DuplicateRequest()
		}

		lent, err := requests.Exists(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("br.book_id = ?", bookID).Where("br.status = ?", models.RequestStatusAccepted)
		})
		if err != nil {
			return err
		}
		if lent {
			return errcodes.InvalidTransition("Book has already been lent.")
		}

		return requests.Create(ctx, request)
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	logger.FromContext(ctx).Info("book requested", logger.Data{
		"request_id":   request.ID,
		"book_id":      bookID,
		"requester_id": caller.ID,
	})
	return request, nil
}

// AcceptRequest accepts a pending request and rejects every other open
// request for the same book, in one transaction. The acceptance only applies
// while the book has no accepted request, so concurrent accepts for the same
// book can't both succeed.
func (svc *Service) AcceptRequest(ctx context.Context, id int, caller *models.User) (*models.BookRequest, error) {
	var request *models.BookRequest
	var rejected int64

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		requests := svc.requests.WithTx(tx)

		var err error
		request, err = requests.Retrieve(ctx, id)
		if err != nil {
			return err
		}
		book, err := svc.books.WithTx(tx).Retrieve(ctx, request.BookID)
		if err != nil {
			return err
		}
		if !access.IsOwner(caller, book) {
			return errcodes.Forbidden("Accepting a request for a book you don't own")
		}

		now := time.Now()
		res, err := tx.NewUpdate().
			Model((*models.BookRequest)(nil)).
			Set("status = ?", models.RequestStatusAccepted).
			Set("updated_at = ?", now).
			Where("id = ?", request.ID).
			Where("status = ?", models.RequestStatusPending).
			Where("NOT EXISTS (SELECT 1 FROM book_requests AS sib WHERE sib.book_id = ? AND sib.status = ?)",
				request.BookID, models.RequestStatusAccepted).
			Exec(ctx)
		if err != nil {
			if store.IsUniqueError(err) {
				return errcodes.InvalidTransition("Book already has an accepted request.")
			}
			return errors.WithStack(err)
		}
		accepted, err := res.RowsAffected()
		if err != nil {
			return errors.WithStack(err)
		}
		if accepted == 0 {
			return transitionError(request)
		}

		res, err = tx.NewUpdate().
			Model((*models.BookRequest)(nil)).
			Set("status = ?", models.RequestStatusRejected).
			Set("updated_at = ?", now).
			Where("book_id = ?", request.BookID).
			Where("id <> ?", request.ID).
			Where("status IN (?)", bun.In([]string{models.RequestStatusIdle, models.RequestStatusPending})).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		rejected, err = res.RowsAffected()
		if err != nil {
			return errors.WithStack(err)
		}

		request, err = requests.Retrieve(ctx, id)
		return err
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	logger.FromContext(ctx).Info("book request accepted", logger.Data{
		"request_id": request.ID,
		"book_id":    request.BookID,
		"rejected":   rejected,
	})
	return request, nil
}

// transitionError explains why request could not be accepted.
func transitionError(request *models.BookRequest) error {
	switch request.Status {
	case models.RequestStatusAccepted:
		return errcodes.InvalidTransition("Book request has already been accepted.")
	case models.RequestStatusRejected:
		return errcodes.InvalidTransition("Book request has already been rejected.")
	case models.RequestStatusPending:
		return errcodes.InvalidTransition("Book already has an accepted request.")
	}
	return errcodes.InvalidTransition("Book request is not pending.")
}
