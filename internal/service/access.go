package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Dan9191/fintrack/internal/models"
	"github.com/Dan9191/fintrack/internal/repository"
)

const permCacheTTL = 5 * time.Minute

// access is what one user may do inside one company
type access struct {
	Owner       bool     `json:"owner"`
	Permissions []string `json:"permissions"`
}

func (a *access) has(perm string) bool {
	return a.Owner || models.HasPermission(a.Permissions, perm)
}

// visible reports whether the company exists for this user at all
func (a *access) visible() bool {
	return a.Owner || len(a.Permissions) > 0
}

func permKey(userID int64, companyID primitive.ObjectID) string {
	return fmt.Sprintf("perm:%d:%s", userID, companyID.Hex())
}

func (s *Service) companyAccess(ctx context.Context, userID int64, companyID primitive.ObjectID) (*access, error) {
	key := permKey(userID, companyID)

	var a access
	hit, err := s.cache.GetObject(ctx, key, &a)
	if err != nil {
		s.log.Warnf("permission cache read failed: %v", err)
	}
	if hit {
		return &a, nil
	}

	company, err := s.store.Companies.Get(ctx, companyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load company: %w", err)
	}

	if company.UserID == userID {
		a = access{Owner: true, Permissions: models.AllPermissions}
	} else {
		member, err := s.store.Members.FindOne(ctx, bson.M{
			"company_id": companyID,
			"user_id":    userID,
			"status":     models.MemberStatusActive,
		})
		switch {
		case errors.Is(err, repository.ErrNotFound):
			a = access{}
		case err != nil:
			return nil, fmt.Errorf("failed to load membership: %w", err)
		default:
			a = access{Permissions: member.Effective()}
		}
	}

	if err := s.cache.SetObject(ctx, key, a, permCacheTTL); err != nil {
		s.log.Warnf("permission cache write failed: %v", err)
	}
	return &a, nil
}

// Authorize checks that userID holds perm in companyID. Companies the user cannot see at
// all are reported as ErrNotFound; visible companies without perm give ErrForbidden.
func (s *Service) Authorize(ctx context.Context, userID int64, companyID primitive.ObjectID, perm string) error {
	a, err := s.companyAccess(ctx, userID, companyID)
	if err != nil {
		return err
	}
	if !a.visible() {
		return ErrNotFound
	}
	if !a.has(perm) {
		return ErrForbidden
	}
	return nil
}

// authorizeRecord checks access to a stored record: personal records belong to their
// owner only, company records follow the company's permissions.
func (s *Service) authorizeRecord(ctx context.Context, userID, ownerID int64, companyID *primitive.ObjectID, perm string) error {
	if companyID == nil {
		if ownerID != userID {
			return ErrNotFound
		}
		return nil
	}
	return s.Authorize(ctx, userID, *companyID, perm)
}

// resolveCompany parses an optional company id from input and checks perm on it
func (s *Service) resolveCompany(ctx context.Context, userID int64, raw, perm string) (*primitive.ObjectID, error) {
	companyID, err := parseOptionalID("companyId", raw)
	if err != nil || companyID == nil {
		return nil, err
	}
	if err := s.Authorize(ctx, userID, *companyID, perm); err != nil {
		return nil, err
	}
	return companyID, nil
}

// CompanyIDsWith returns the companies the user owns plus those where an active membership grants perm
func (s *Service) CompanyIDsWith(ctx context.Context, userID int64, perm string) ([]primitive.ObjectID, error) {
	owned, err := s.store.Companies.Find(ctx, bson.M{"user_id": userID}, repository.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	members, err := s.store.Members.Find(ctx, bson.M{
		"user_id": userID,
		"status":  models.MemberStatusActive,
	}, repository.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}

	ids := make([]primitive.ObjectID, 0, len(owned)+len(members))
	for _, c := range owned {
		ids = append(ids, c.ID)
	}
	for i := range members {
		if models.HasPermission(members[i].Effective(), perm) {
			ids = append(ids, members[i].CompanyID)
		}
	}
	return ids, nil
}

// scopeFilter selects the records a list operation may return. With a company id the
// caller needs perm there; without one it covers personal records plus every company
// granting perm.
func (s *Service) scopeFilter(ctx context.Context, userID int64, companyID *primitive.ObjectID, perm string) (bson.M, error) {
	if companyID != nil {
		if err := s.Authorize(ctx, userID, *companyID, perm); err != nil {
			return nil, err
		}
		return bson.M{"company_id": *companyID}, nil
	}

	personal := bson.M{"user_id": userID, "company_id": nil}
	ids, err := s.CompanyIDsWith(ctx, userID, perm)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return personal, nil
	}
	return bson.M{"$or": bson.A{personal, bson.M{"company_id": bson.M{"$in": ids}}}}, nil
}

func (s *Service) invalidateAccess(ctx context.Context, companyID primitive.ObjectID, userIDs ...int64) {
	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, permKey(id, companyID))
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.log.Warnf("permission cache invalidation failed: %v", err)
	}
}

// merge returns a new filter holding every key of base and extra
func merge(base bson.M, extra bson.M) bson.M {
	out := make(bson.M, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
