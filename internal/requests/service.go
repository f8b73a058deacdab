// Package requests handles user requests for games to be added to the catalog.
package requests

import (
	"context"
	"slices"
	"strings"
	"time"

	"gamehub/backend/internal/apperr"
	"gamehub/backend/internal/auth"
	"gamehub/backend/internal/models"
	"gamehub/backend/internal/store"
)

type Service struct {
	store store.Store
	now   func() time.Time
}

func NewService(st store.Store) *Service {
	return &Service{store: st, now: time.Now}
}

// Submit files a new pending request on behalf of caller.
func (s *Service) Submit(ctx context.Context, caller auth.Identity, steamID, gameName, notes string) (models.Request, error) {
	gameName = strings.TrimSpace(gameName)
	if gameName == "" {
		return models.Request{}, apperr.New(apperr.Validation, "Game name is required")
	}

	var req models.Request
	err := store.Atomic(ctx, s.store, func(tx store.Store) error {
		requests, err := store.Load[models.Request](ctx, tx, store.Requests)
		if err != nil {
			return err
		}
		req = models.Request{
			ID:        store.NextID(requests),
			SteamID:   strings.TrimSpace(steamID),
			GameName:  gameName,
			Notes:     notes,
			Username:  caller.Username,
			Status:    models.RequestPending,
			Timestamp: s.now().UTC(),
		}
		return store.Save(ctx, tx, store.Requests, append(requests, req))
	})
	if err != nil {
		return models.Request{}, apperr.OrInternal(err, "Failed to submit request")
	}
	return req, nil
}

// List returns requests newest first. Only callers allowed to manage requests
// see everyone's; others get their own.
func (s *Service) List(ctx context.Context, caller auth.Identity) ([]models.Request, error) {
	requests, err := store.Load[models.Request](ctx, s.store, store.Requests)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "Failed to fetch requests")
	}
	if !caller.Can(auth.ActionManageRequests) {
		requests = slices.DeleteFunc(requests, func(r models.Request) bool {
			return r.Username != caller.Username
		})
	}
	slices.SortStableFunc(requests, func(a, b models.Request) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return requests, nil
}

// SetStatus moves a pending request to approved or rejected. Both are terminal.
func (s *Service) SetStatus(ctx context.Context, caller auth.Identity, id int, status models.RequestStatus) (models.Request, error) {
	if !caller.Can(auth.ActionManageRequests) {
		return models.Request{}, apperr.New(apperr.Forbidden, "Insufficient permissions")
	}
	if !status.Terminal() {
		return models.Request{}, apperr.New(apperr.Validation, "Status must be approved or rejected")
	}

	var req models.Request
	err := store.Atomic(ctx, s.store, func(tx store.Store) error {
		requests, err := store.Load[models.Request](ctx, tx, store.Requests)
		if err != nil {
			return err
		}
		i := slices.IndexFunc(requests, func(r models.Request) bool { return r.ID == id })
		if i < 0 {
			return apperr.New(apperr.NotFound, "Request not found")
		}
		if requests[i].Status != models.RequestPending {
			return apperr.New(apperr.Conflict, "Request already "+string(requests[i].Status))
		}
		requests[i].Status = status
		req = requests[i]
		return store.Save(ctx, tx, store.Requests, requests)
	})
	if err != nil {
		return models.Request{}, apperr.OrInternal(err, "Failed to update request")
	}
	return req, nil
}

func (s *Service) Delete(ctx context.Context, caller auth.Identity, id int) error {
	if !caller.Can(auth.ActionManageRequests) {
		return apperr.New(apperr.Forbidden, "Insufficient permissions")
	}
	err := store.Atomic(ctx, s.store, func(tx store.Store) error {
		requests, err := store.Load[models.Request](ctx, tx, store.Requests)
		if err != nil {
			return err
		}
		i := slices.IndexFunc(requests, func(r models.Request) bool { return r.ID == id })
		if i < 0 {
			return apperr.New(apperr.NotFound, "Request not found")
		}
		return store.Save(ctx, tx, store.Requests, slices.Delete(requests, i, i+1))
	})
	return apperr.OrInternal(err, "Failed to delete request")
}
