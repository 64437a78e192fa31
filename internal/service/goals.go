package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Dan9191/fintrack/internal/models"
	"github.com/Dan9191/fintrack/internal/repository"
	"github.com/Dan9191/fintrack/internal/utils"
)

const daysPerMonth = 30

func dayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween counts calendar days from a to b, negative when b is earlier
func daysBetween(a, b time.Time) int {
	return int(math.Round(dayOf(b).Sub(dayOf(a)).Hours() / 24))
}

// GoalProgressAt derives progress figures for g as of now, assuming linear saving
// from StartDate to TargetDate.
func GoalProgressAt(g *models.Goal, now time.Time) models.GoalProgress {
	target := decimal.NewFromFloat(g.TargetAmount)
	current := decimal.NewFromFloat(g.CurrentAmount)
	remaining := decimal.Max(target.Sub(current), decimal.Zero)
	completed := g.TargetAmount > 0 && !current.LessThan(target)

	totalDays := daysBetween(g.StartDate, g.TargetDate)
	if totalDays < 1 {
		totalDays = 1
	}
	elapsed := daysBetween(g.StartDate, now)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > totalDays {
		elapsed = totalDays
	}
	daysRemaining := daysBetween(now, g.TargetDate)
	if daysRemaining < 0 {
		daysRemaining = 0
	}

	p := models.GoalProgress{
		Percentage:      math.Min(100, utils.Percent(g.CurrentAmount, g.TargetAmount)),
		RemainingAmount: utils.Round2(remaining),
		DaysElapsed:     elapsed,
		DaysRemaining:   daysRemaining,
	}

	requiredDaily := remaining
	if daysRemaining > 0 {
		requiredDaily = remaining.Div(decimal.NewFromInt(int64(daysRemaining)))
	}
	p.RequiredDaily = utils.Round2(requiredDaily)
	p.RequiredMonthly = utils.Round2(requiredDaily.Mul(decimal.NewFromInt(daysPerMonth)))

	if elapsed > 0 {
		p.AverageDaily = utils.Round2(current.Div(decimal.NewFromInt(int64(elapsed))))
		if current.IsPositive() && remaining.IsPositive() {
			// days still needed at the average pace so far
			needed := remaining.Mul(decimal.NewFromInt(int64(elapsed))).Div(current).Ceil().IntPart()
			projected := dayOf(now).AddDate(0, 0, int(needed))
			p.ProjectedCompletionDate = &projected
		}
	}

	expected := target.Mul(decimal.NewFromInt(int64(elapsed))).Div(decimal.NewFromInt(int64(totalDays)))
	p.ExpectedAmount = utils.Round2(expected)
	p.Variance = utils.Round2(current.Sub(expected))
	p.OnTrack = !current.LessThan(expected)

	switch {
	case completed:
		p.Status = models.GoalStatusCompleted
		p.OnTrack = true
	case dayOf(now).After(dayOf(g.TargetDate)):
		p.Status = models.GoalStatusOverdue
		p.OnTrack = false
	case p.OnTrack:
		p.Status = models.GoalStatusOnTrack
	default:
		p.Status = models.GoalStatusBehind
	}
	return p
}

// markMilestones flags milestones reached by amount; earlier achievements are kept
func markMilestones(milestones []models.Milestone, amount float64, now time.Time) []models.Milestone {
	for i := range milestones {
		if !milestones[i].Achieved && amount >= milestones[i].Amount {
			at := now
			milestones[i].Achieved = true
			milestones[i].AchievedAt = &at
		}
	}
	return milestones
}

// inputMilestones takes milestones from a request. Achievement is derived from amount,
// keeping the achievedAt of a matching milestone that was already reached.
func inputMilestones(in, previous []models.Milestone, amount float64, now time.Time) []models.Milestone {
	type key struct {
		title  string
		amount float64
	}
	reached := make(map[key]*time.Time, len(previous))
	for _, m := range previous {
		if m.Achieved && m.AchievedAt != nil {
			reached[key{m.Title, m.Amount}] = m.AchievedAt
		}
	}
	out := make([]models.Milestone, 0, len(in))
	for _, m := range in {
		m.Title = strings.TrimSpace(m.Title)
		m.Achieved = amount >= m.Amount
		m.AchievedAt = nil
		if m.Achieved {
			at := now
			if prev, ok := reached[key{m.Title, m.Amount}]; ok {
				at = *prev
			}
			m.AchievedAt = &at
		}
		out = append(out, m)
	}
	return out
}

func goalStatus(current, target float64) string {
	if current >= target {
		return models.GoalStatusCompleted
	}
	return models.GoalStatusActive
}

func (s *Service) withProgress(g *models.Goal) models.GoalWithProgress {
	return models.GoalWithProgress{Goal: *g, Progress: GoalProgressAt(g, s.now())}
}

func (s *Service) ListGoals(ctx context.Context, companyID *primitive.ObjectID) ([]models.GoalWithProgress, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	filter, err := s.scopeFilter(ctx, userID, companyID, models.PermViewGoals)
	if err != nil {
		return nil, err
	}
	goals, err := s.store.Goals.Find(ctx, filter, repository.ListOptions{
		Sort: bson.D{{Key: "target_date", Value: 1}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	result := make([]models.GoalWithProgress, 0, len(goals))
	for i := range goals {
		result = append(result, s.withProgress(&goals[i]))
	}
	return result, nil
}

func (s *Service) loadGoal(ctx context.Context, userID int64, id primitive.ObjectID, perm string) (*models.Goal, error) {
	goal, err := s.store.Goals.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeRecord(ctx, userID, goal.UserID, goal.CompanyID, perm); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *Service) GetGoal(ctx context.Context, id primitive.ObjectID) (*models.GoalWithProgress, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	goal, err := s.loadGoal(ctx, userID, id, models.PermViewGoals)
	if err != nil {
		return nil, err
	}
	result := s.withProgress(goal)
	return &result, nil
}

func (s *Service) applyGoalInput(ctx context.Context, userID int64, g *models.Goal, in models.GoalInput) error {
	if err := validateInput(in); err != nil {
		return err
	}
	start := g.StartDate
	if in.StartDate != nil {
		start = in.StartDate.UTC()
	}
	if start.IsZero() {
		start = s.now()
	}
	if !in.TargetDate.After(start) {
		return invalid("targetDate must be after startDate")
	}
	companyID, err := s.resolveCompany(ctx, userID, in.CompanyID, models.PermEditGoals)
	if err != nil {
		return err
	}

	g.CompanyID = companyID
	g.Name = strings.TrimSpace(in.Name)
	g.Description = in.Description
	g.Category = in.Category
	g.TargetAmount = utils.Money(in.TargetAmount)
	g.CurrentAmount = utils.Money(in.CurrentAmount)
	g.StartDate = start
	g.TargetDate = in.TargetDate.UTC()
	g.Milestones = inputMilestones(in.Milestones, g.Milestones, g.CurrentAmount, s.now())
	g.Status = goalStatus(g.CurrentAmount, g.TargetAmount)
	return nil
}

func (s *Service) CreateGoal(ctx context.Context, in models.GoalInput) (*models.GoalWithProgress, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	goal := &models.Goal{UserID: userID}
	if err := s.applyGoalInput(ctx, userID, goal, in); err != nil {
		return nil, err
	}
	now := s.now()
	goal.CreatedAt = now
	goal.UpdatedAt = now
	if goal.ID, err = s.store.Goals.Insert(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	result := s.withProgress(goal)
	return &result, nil
}

func (s *Service) UpdateGoal(ctx context.Context, id primitive.ObjectID, in models.GoalInput) (*models.GoalWithProgress, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	goal, err := s.loadGoal(ctx, userID, id, models.PermEditGoals)
	if err != nil {
		return nil, err
	}
	if err := s.applyGoalInput(ctx, userID, goal, in); err != nil {
		return nil, err
	}
	goal.UpdatedAt = s.now()

	set := bson.M{
		"name":           goal.Name,
		"description":    goal.Description,
		"category":       goal.Category,
		"target_amount":  goal.TargetAmount,
		"current_amount": goal.CurrentAmount,
		"start_date":     goal.StartDate,
		"target_date":    goal.TargetDate,
		"status":         goal.Status,
		"milestones":     goal.Milestones,
		"updated_at":     goal.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if goal.CompanyID != nil {
		set["company_id"] = *goal.CompanyID
	} else {
		update["$unset"] = bson.M{"company_id": ""}
	}
	if err := s.store.Goals.Update(ctx, id, update); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	result := s.withProgress(goal)
	return &result, nil
}

func (s *Service) DeleteGoal(ctx context.Context, id primitive.ObjectID) error {
	userID, err := currentUser(ctx)
	if err != nil {
		return err
	}
	if _, err := s.loadGoal(ctx, userID, id, models.PermEditGoals); err != nil {
		return err
	}
	if err := s.store.Goals.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return nil
}

// AddContribution adds amount to the goal's saved total. Negative amounts are withdrawals;
// the total never drops below zero.
func (s *Service) AddContribution(ctx context.Context, id primitive.ObjectID, in models.ContributionInput) (*models.GoalWithProgress, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}
	goal, err := s.loadGoal(ctx, userID, id, models.PermEditGoals)
	if err != nil {
		return nil, err
	}

	now := s.now()
	goal.CurrentAmount = math.Max(0, utils.SumMoney(goal.CurrentAmount, in.Amount))
	goal.Milestones = markMilestones(goal.Milestones, goal.CurrentAmount, now)
	goal.Status = goalStatus(goal.CurrentAmount, goal.TargetAmount)
	goal.UpdatedAt = now

	if err := s.store.Goals.Update(ctx, id, bson.M{"$set": bson.M{
		"current_amount": goal.CurrentAmount,
		"milestones":     goal.Milestones,
		"status":         goal.Status,
		"updated_at":     now,
	}}); err != nil {
		return nil, fmt.Errorf("failed to record contribution: %w", err)
	}
	result := s.withProgress(goal)
	return &result, nil
}
