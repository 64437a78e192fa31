package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ttacon/libphonenumber"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Dan9191/fintrack/internal/models"
	"github.com/Dan9191/fintrack/internal/repository"
	"github.com/Dan9191/fintrack/internal/utils"
)

const (
	defaultCurrency    = "USD"
	defaultPhoneRegion = "US"
)

// normalizePhone validates phone for the address country and formats it as E.164
func normalizePhone(phone, country string) (string, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return "", nil
	}
	region := strings.ToUpper(strings.TrimSpace(country))
	if region == "" {
		region = defaultPhoneRegion
	}
	num, err := libphonenumber.Parse(phone, region)
	if err != nil || !libphonenumber.IsValidNumber(num) {
		return "", invalid("contactInfo.phone must be a valid phone number")
	}
	return libphonenumber.Format(num, libphonenumber.E164), nil
}

func currencyOrDefault(c string) string {
	if c == "" {
		return defaultCurrency
	}
	return strings.ToUpper(c)
}

// prepareCompany validates in and returns the normalized contact info and the encrypted tax id
func (s *Service) prepareCompany(in *models.CompanyInput) (models.ContactInfo, string, error) {
	if err := validateInput(in); err != nil {
		return models.ContactInfo{}, "", err
	}
	contact := in.ContactInfo
	phone, err := normalizePhone(contact.Phone, in.Address.Country)
	if err != nil {
		return models.ContactInfo{}, "", err
	}
	contact.Phone = phone
	contact.Email = strings.ToLower(contact.Email)

	var taxID string
	if in.TaxID != "" {
		key, err := s.config.EncryptionKeyBytes()
		if err != nil {
			return models.ContactInfo{}, "", err
		}
		if taxID, err = utils.Encrypt(in.TaxID, key); err != nil {
			return models.ContactInfo{}, "", fmt.Errorf("failed to encrypt tax id: %w", err)
		}
	}
	return contact, taxID, nil
}

// present decrypts the tax id for the owner and masks it for everyone else
func (s *Service) present(c *models.Company, userID int64) *models.Company {
	if c.TaxID == "" {
		return c
	}
	key, err := s.config.EncryptionKeyBytes()
	if err == nil {
		var plain string
		if plain, err = utils.Decrypt(c.TaxID, key); err == nil {
			if c.UserID == userID {
				c.TaxID = plain
			} else {
				c.TaxID = utils.Mask(plain)
			}
			return c
		}
	}
	s.log.Warnf("could not decrypt tax id of company %s: %v", c.ID.Hex(), err)
	c.TaxID = ""
	return c
}

func (s *Service) CreateCompany(ctx context.Context, in models.CompanyInput) (*models.Company, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	contact, taxID, err := s.prepareCompany(&in)
	if err != nil {
		return nil, err
	}

	now := s.now()
	company := &models.Company{
		Name:        strings.TrimSpace(in.Name),
		Industry:    in.Industry,
		Address:     in.Address,
		ContactInfo: contact,
		TaxID:       taxID,
		Currency:    currencyOrDefault(in.Currency),
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if company.ID, err = s.store.Companies.Insert(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	s.log.Infof("Company %s created by user %d", company.ID.Hex(), userID)
	return s.present(company, userID), nil
}

// ListCompanies returns owned companies and those shared with view_companies
func (s *Service) ListCompanies(ctx context.Context) ([]models.Company, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	ids, err := s.CompanyIDsWith(ctx, userID, models.PermViewCompanies)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Company{}, nil
	}
	companies, err := s.store.Companies.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, repository.ListOptions{
		Sort: bson.D{{Key: "name", Value: 1}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	for i := range companies {
		s.present(&companies[i], userID)
	}
	return companies, nil
}

func (s *Service) GetCompany(ctx context.Context, id primitive.ObjectID) (*models.Company, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.Authorize(ctx, userID, id, models.PermViewCompanies); err != nil {
		return nil, err
	}
	company, err := s.store.Companies.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.present(company, userID), nil
}

func (s *Service) UpdateCompany(ctx context.Context, id primitive.ObjectID, in models.CompanyInput) (*models.Company, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.Authorize(ctx, userID, id, models.PermManageCompanies); err != nil {
		return nil, err
	}
	contact, taxID, err := s.prepareCompany(&in)
	if err != nil {
		return nil, err
	}

	set := bson.M{
		"name":         strings.TrimSpace(in.Name),
		"industry":     in.Industry,
		"address":      in.Address,
		"contact_info": contact,
		"currency":     currencyOrDefault(in.Currency),
		"updated_at":   s.now(),
	}
	update := bson.M{"$set": set}
	if taxID != "" {
		set["tax_id"] = taxID
	} else {
		update["$unset"] = bson.M{"tax_id": ""}
	}
	if err := s.store.Companies.Update(ctx, id, update); err != nil {
		return nil, fmt.Errorf("failed to update company: %w", err)
	}
	return s.GetCompany(ctx, id)
}

// DeleteCompany is reserved to the owner. Team members and invites go with the company;
// finance records are detached and stay with the users who created them.
func (s *Service) DeleteCompany(ctx context.Context, id primitive.ObjectID) error {
	userID, err := currentUser(ctx)
	if err != nil {
		return err
	}
	a, err := s.companyAccess(ctx, userID, id)
	if err != nil {
		return err
	}
	if !a.visible() {
		return ErrNotFound
	}
	if !a.Owner {
		return ErrForbidden
	}

	members, err := s.store.Members.Find(ctx, bson.M{"company_id": id}, repository.ListOptions{})
	if err != nil {
		return fmt.Errorf("failed to list members: %w", err)
	}

	if err := s.store.Companies.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	if _, err := s.store.Members.DeleteMany(ctx, bson.M{"company_id": id}); err != nil {
		return fmt.Errorf("failed to delete members: %w", err)
	}
	if _, err := s.store.Invites.DeleteMany(ctx, bson.M{"company_id": id}); err != nil {
		return fmt.Errorf("failed to delete invites: %w", err)
	}
	if err := s.detachCompanyRecords(ctx, id); err != nil {
		return err
	}

	userIDs := []int64{userID}
	for _, m := range members {
		userIDs = append(userIDs, m.UserID)
	}
	s.invalidateAccess(ctx, id, userIDs...)

	s.log.Infof("Company %s deleted by user %d", id.Hex(), userID)
	return nil
}

func (s *Service) detachCompanyRecords(ctx context.Context, id primitive.ObjectID) error {
	filter := bson.M{"company_id": id}
	update := bson.M{"$unset": bson.M{"company_id": ""}}
	updates := []struct {
		name string
		run  func() (int64, error)
	}{
		{"expenses", func() (int64, error) { return s.store.Expenses.UpdateMany(ctx, filter, update) }},
		{"incomes", func() (int64, error) { return s.store.Incomes.UpdateMany(ctx, filter, update) }},
		{"debts", func() (int64, error) { return s.store.Debts.UpdateMany(ctx, filter, update) }},
		{"assets", func() (int64, error) { return s.store.Assets.UpdateMany(ctx, filter, update) }},
		{"budgets", func() (int64, error) { return s.store.Budgets.UpdateMany(ctx, filter, update) }},
		{"goals", func() (int64, error) { return s.store.Goals.UpdateMany(ctx, filter, update) }},
		{"payments", func() (int64, error) { return s.store.Payments.UpdateMany(ctx, filter, update) }},
	}
	for _, u := range updates {
		if _, err := u.run(); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("failed to detach %s: %w", u.name, err)
		}
	}
	return nil
}
