package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Dan9191/fintrack/internal/models"
	"github.com/Dan9191/fintrack/internal/repository"
	"github.com/Dan9191/fintrack/internal/utils"
)

func (s *Service) ListAssets(ctx context.Context, companyID *primitive.ObjectID, assetType string) ([]models.Asset, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	filter, err := s.scopeFilter(ctx, userID, companyID, models.PermViewAssets)
	if err != nil {
		return nil, err
	}
	if assetType != "" {
		filter["type"] = assetType
	}
	assets, err := s.store.Assets.Find(ctx, filter, repository.ListOptions{
		Sort: bson.D{{Key: "value", Value: -1}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	return assets, nil
}

func (s *Service) loadAsset(ctx context.Context, userID int64, id primitive.ObjectID, perm string) (*models.Asset, error) {
	asset, err := s.store.Assets.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeRecord(ctx, userID, asset.UserID, asset.CompanyID, perm); err != nil {
		return nil, err
	}
	return asset, nil
}

func (s *Service) GetAsset(ctx context.Context, id primitive.ObjectID) (*models.Asset, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.loadAsset(ctx, userID, id, models.PermViewAssets)
}

func (s *Service) applyAssetInput(ctx context.Context, userID int64, a *models.Asset, in models.AssetInput) error {
	if err := validateInput(in); err != nil {
		return err
	}
	companyID, err := s.resolveCompany(ctx, userID, in.CompanyID, models.PermEditAssets)
	if err != nil {
		return err
	}
	a.CompanyID = companyID
	a.Name = strings.TrimSpace(in.Name)
	a.Type = in.Type
	a.Value = utils.Money(in.Value)
	a.PurchasePrice = utils.Money(in.PurchasePrice)
	a.PurchaseDate = nil
	if in.PurchaseDate != nil {
		d := in.PurchaseDate.UTC()
		a.PurchaseDate = &d
	}
	a.Description = in.Description
	return nil
}

func (s *Service) CreateAsset(ctx context.Context, in models.AssetInput) (*models.Asset, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	asset := &models.Asset{UserID: userID}
	if err := s.applyAssetInput(ctx, userID, asset, in); err != nil {
		return nil, err
	}
	now := s.now()
	asset.CreatedAt = now
	asset.UpdatedAt = now
	if asset.ID, err = s.store.Assets.Insert(ctx, asset); err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}
	return asset, nil
}

func (s *Service) UpdateAsset(ctx context.Context, id primitive.ObjectID, in models.AssetInput) (*models.Asset, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	asset, err := s.loadAsset(ctx, userID, id, models.PermEditAssets)
	if err != nil {
		return nil, err
	}
	if err := s.applyAssetInput(ctx, userID, asset, in); err != nil {
		return nil, err
	}
	asset.UpdatedAt = s.now()

	set := bson.M{
		"name":           asset.Name,
		"type":           asset.Type,
		"value":          asset.Value,
		"purchase_price": asset.PurchasePrice,
		"description":    asset.Description,
		"updated_at":     asset.UpdatedAt,
	}
	unset := bson.M{}
	if asset.CompanyID != nil {
		set["company_id"] = *asset.CompanyID
	} else {
		unset["company_id"] = ""
	}
	if asset.PurchaseDate != nil {
		set["purchase_date"] = *asset.PurchaseDate
	} else {
		unset["purchase_date"] = ""
	}
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	if err := s.store.Assets.Update(ctx, id, update); err != nil {
		return nil, fmt.Errorf("failed to update asset: %w", err)
	}
	return asset, nil
}

func (s *Service) DeleteAsset(ctx context.Context, id primitive.ObjectID) error {
	userID, err := currentUser(ctx)
	if err != nil {
		return err
	}
	if _, err := s.loadAsset(ctx, userID, id, models.PermEditAssets); err != nil {
		return err
	}
	if err := s.store.Assets.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	return nil
}

func (s *Service) AssetSummary(ctx context.Context, companyID *primitive.ObjectID) (*models.AssetSummary, error) {
	assets, err := s.ListAssets(ctx, companyID, "")
	if err != nil {
		return nil, err
	}
	return summarizeAssets(assets), nil
}

func summarizeAssets(assets []models.Asset) *models.AssetSummary {
	value, purchase := decimal.Zero, decimal.Zero
	byType := make(map[string]decimal.Decimal)
	for _, a := range assets {
		v := decimal.NewFromFloat(a.Value)
		value = value.Add(v)
		purchase = purchase.Add(decimal.NewFromFloat(a.PurchasePrice))
		byType[a.Type] = byType[a.Type].Add(v)
	}
	summary := &models.AssetSummary{
		TotalValue:         utils.Round2(value),
		TotalPurchasePrice: utils.Round2(purchase),
		Appreciation:       utils.Round2(value.Sub(purchase)),
		ByType:             make(map[string]float64, len(byType)),
		Count:              len(assets),
	}
	for t, v := range byType {
		summary.ByType[t] = utils.Round2(v)
	}
	return summary
}
