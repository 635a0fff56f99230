package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"gamestore-admin/internal/domain"
	"gamestore-admin/internal/repository/memory"
	"gamestore-admin/internal/validation"
	"gamestore-admin/pkg/utils"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func clockAt(t time.Time) domain.Clock { return func() time.Time { return t } }

func ptr[T any](v T) *T { return &v }

func fieldErrors(t *testing.T, err error) validation.Errors {
	t.Helper()
	var errs validation.Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	return errs
}

func validCoupon() domain.CouponParams {
	return domain.CouponParams{
		Code:          ptr("Basic-1"),
		Status:        ptr(domain.CouponStatusActive),
		DiscountValue: ptr(decimal.RequireFromString("10.5")),
		DueDate:       ptr(now.Add(24 * time.Hour)),
	}
}

func TestCouponCreateAndCaseInsensitiveUniqueness(t *testing.T) {
	store := memory.NewStore()
	uc := NewCouponUsecase(store.Coupons(), clockAt(now))
	ctx := context.Background()

	c, err := uc.Create(ctx, validCoupon())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.ID == 0 || c.Code != "Basic-1" {
		t.Fatalf("unexpected coupon %+v", c)
	}

	dup := validCoupon()
	dup.Code = ptr("basic-1")
	_, err = uc.Create(ctx, dup)
	if errs := fieldErrors(t, err); errs["code"][0] != validation.MsgTaken {
		t.Fatalf("expected code taken, got %v", errs)
	}

	// Updating a coupon with its own code is not a conflict.
	if _, err := uc.Update(ctx, c.ID, domain.CouponParams{Code: ptr("BASIC-1")}); err != nil {
		t.Fatalf("expected self update to pass, got %v", err)
	}
}

func TestCouponCreateReportsEveryMissingField(t *testing.T) {
	store := memory.NewStore()
	uc := NewCouponUsecase(store.Coupons(), clockAt(now))

	_, err := uc.Create(context.Background(), domain.CouponParams{})
	errs := fieldErrors(t, err)
	for _, f := range []string{"code", "status", "discount_value", "due_date"} {
		if !errs.Has(f) {
			t.Fatalf("expected an error on %s, got %v", f, errs)
		}
	}
	list, _ := uc.List(context.Background())
	if len(list) != 0 {
		t.Fatalf("expected nothing persisted, got %d", len(list))
	}
}

func TestCouponDueDateGoesStale(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	c, err := NewCouponUsecase(store.Coupons(), clockAt(now)).Create(ctx, validCoupon())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	later := NewCouponUsecase(store.Coupons(), clockAt(now.Add(48*time.Hour)))
	_, err = later.Update(ctx, c.ID, domain.CouponParams{Status: ptr(domain.CouponStatusInactive)})
	if errs := fieldErrors(t, err); errs["due_date"][0] != validation.MsgFuture {
		t.Fatalf("expected stale due date, got %v", errs)
	}

	stored, _ := later.Get(ctx, c.ID)
	if stored.Status != domain.CouponStatusActive {
		t.Fatal("expected the rejected update not to be persisted")
	}
}

func TestPartialUpdateKeepsOtherFields(t *testing.T) {
	store := memory.NewStore()
	uc := NewCouponUsecase(store.Coupons(), clockAt(now))
	ctx := context.Background()
	c, _ := uc.Create(ctx, validCoupon())

	updated, err := uc.Update(ctx, c.ID, domain.CouponParams{Status: ptr(domain.CouponStatusInactive)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Code != "Basic-1" || !updated.DiscountValue.Equal(decimal.RequireFromString("10.5")) {
		t.Fatalf("expected untouched fields to survive, got %+v", updated)
	}
}

func TestDeleteUnknownIsNotFound(t *testing.T) {
	store := memory.NewStore()
	uc := NewCouponUsecase(store.Coupons(), clockAt(now))

	err := uc.Delete(context.Background(), 99)
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) || nf.Field != "id" {
		t.Fatalf("expected not found on id, got %v", err)
	}
}

func seedRequirementAndGame(t *testing.T, store *memory.Store) (*domain.SystemRequirement, *domain.Game) {
	t.Helper()
	ctx := context.Background()
	sr, err := NewSystemRequirementUsecase(store.SystemRequirements(), clockAt(now)).Create(ctx, domain.SystemRequirementParams{
		Name: ptr("Basic"), OperationalSystem: ptr("Windows 10"), Storage: ptr("50GB"),
		Processor: ptr("i5"), Memory: ptr("8GB"), VideoBoard: ptr("GTX 1060"),
	})
	if err != nil {
		t.Fatalf("create requirement: %v", err)
	}
	g, err := NewGameUsecase(store.Games(), store.SystemRequirements(), clockAt(now)).Create(ctx, domain.GameParams{
		Mode: ptr(domain.GameModePvE), ReleaseDate: ptr(now.AddDate(-1, 0, 0)),
		Developer: ptr("Blizzard"), SystemRequirementID: ptr(sr.ID),
	})
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	return sr, g
}

func TestSystemRequirementDeleteRestricted(t *testing.T) {
	store := memory.NewStore()
	sr, _ := seedRequirementAndGame(t, store)
	uc := NewSystemRequirementUsecase(store.SystemRequirements(), clockAt(now))

	err := uc.Delete(context.Background(), sr.ID)
	errs := fieldErrors(t, err)
	if errs["base"][0] != "Cannot delete record because dependent games exist" {
		t.Fatalf("unexpected base error %v", errs)
	}
}

func TestGameRequiresExistingRequirement(t *testing.T) {
	store := memory.NewStore()
	uc := NewGameUsecase(store.Games(), store.SystemRequirements(), clockAt(now))

	_, err := uc.Create(context.Background(), domain.GameParams{
		Mode: ptr("coop"), ReleaseDate: ptr(now), Developer: ptr("Valve"), SystemRequirementID: ptr(int64(5)),
	})
	errs := fieldErrors(t, err)
	if errs["system_requirement"][0] != validation.MsgMustExist || errs["mode"][0] != validation.MsgNotIncluded {
		t.Fatalf("unexpected errors %v", errs)
	}
}

func TestLicenseListForUnknownGame(t *testing.T) {
	store := memory.NewStore()
	uc := NewLicenseUsecase(store.Licenses(), store.Games(), clockAt(now))

	_, _, err := uc.ListByGame(context.Background(), 12, domain.ListQuery{})
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) || nf.Field != "game_id" {
		t.Fatalf("expected not found on game_id, got %v", err)
	}
}

func TestLicenseCreateAndList(t *testing.T) {
	store := memory.NewStore()
	_, g := seedRequirementAndGame(t, store)
	uc := NewLicenseUsecase(store.Licenses(), store.Games(), clockAt(now))
	ctx := context.Background()

	for _, key := range []string{"KEY-B", "KEY-A", "OTHER"} {
		if _, err := uc.Create(ctx, g.ID, domain.LicenseParams{Key: ptr(key), Platform: ptr(domain.PlatformSteam), Status: ptr(domain.LicenseStatusAvailable)}); err != nil {
			t.Fatalf("create %s: %v", key, err)
		}
	}

	licenses, meta, err := uc.ListByGame(ctx, g.ID, domain.ListQuery{Search: "key", Order: "key"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if meta.Total != 2 || meta.Page != 1 || meta.Length != domain.DefaultLength || meta.TotalPages != 1 {
		t.Fatalf("unexpected meta %+v", meta)
	}
	if licenses[0].Key != "KEY-A" || licenses[1].Key != "KEY-B" {
		t.Fatalf("unexpected order %+v", licenses)
	}

	_, err = uc.Create(ctx, 999, domain.LicenseParams{Key: ptr("X"), Platform: ptr(domain.PlatformSteam), Status: ptr(domain.LicenseStatusAvailable)})
	if errs := fieldErrors(t, err); errs["game"][0] != validation.MsgMustExist {
		t.Fatalf("expected game must exist, got %v", errs)
	}
}

func newUserUsecase(store *memory.Store) *UserUsecase {
	uc := NewUserUsecase(store.Users(), clockAt(now))
	uc.cost = bcrypt.MinCost
	return uc
}

func TestUserPasswordIsHashedAndConfirmed(t *testing.T) {
	store := memory.NewStore()
	uc := newUserUsecase(store)
	ctx := context.Background()

	_, err := uc.Create(ctx, domain.UserParams{
		Name: ptr("Ann"), Email: ptr("ann@example.com"), Profile: ptr(domain.ProfileClient),
		Password: ptr("secret123"), PasswordConfirmation: ptr("secret124"),
	})
	if errs := fieldErrors(t, err); !errs.Has("password_confirmation") {
		t.Fatalf("expected confirmation error, got %v", errs)
	}

	u, err := uc.Create(ctx, domain.UserParams{
		Name: ptr("Ann"), Email: ptr(" Ann@Example.com "), Profile: ptr(domain.ProfileClient),
		Password: ptr("secret123"), PasswordConfirmation: ptr("secret123"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.Email != "ann@example.com" {
		t.Fatalf("expected normalized email, got %q", u.Email)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordDigest), []byte("secret123")) != nil {
		t.Fatal("expected a bcrypt digest of the password")
	}

	// Updating without a password keeps the digest.
	digest := u.PasswordDigest
	u, err = uc.Update(ctx, u.ID, domain.UserParams{Name: ptr("Annie")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if u.PasswordDigest != digest {
		t.Fatal("expected digest to be kept")
	}
}

func TestUserPasswordRequiredOnCreate(t *testing.T) {
	store := memory.NewStore()
	_, err := newUserUsecase(store).Create(context.Background(), domain.UserParams{
		Name: ptr("Bob"), Email: ptr("bob@example.com"), Profile: ptr(domain.ProfileAdmin),
	})
	if errs := fieldErrors(t, err); errs["password"][0] != validation.MsgBlank {
		t.Fatalf("expected password blank, got %v", errs)
	}
}

type fakeRemover struct {
	removed []string
	err     error
}

func (f *fakeRemover) DeleteFile(_ context.Context, url string) error {
	f.removed = append(f.removed, url)
	return f.err
}

func validProduct(gameID int64) domain.ProductParams {
	return domain.ProductParams{
		Name:          ptr("Diablo IV"),
		Description:   ptr("Action RPG"),
		Price:         ptr(decimal.RequireFromString("199.90")),
		Status:        ptr(domain.ProductStatusAvailable),
		ImageURL:      ptr("https://cdn.example.com/uploads/diablo.webp"),
		Productable:   ptr(string(domain.ProductableGame)),
		ProductableID: ptr(gameID),
	}
}

func TestProductLifecycle(t *testing.T) {
	store := memory.NewStore()
	_, g := seedRequirementAndGame(t, store)
	images := &fakeRemover{}
	uc := NewProductUsecase(store.Products(), store.Categories(), images, clockAt(now))
	ctx := context.Background()

	cat, _ := NewCategoryUsecase(store.Categories(), clockAt(now)).Create(ctx, domain.CategoryParams{Name: ptr("RPG")})

	params := validProduct(g.ID)
	params.CategoryIDs = []int64{cat.ID}
	p, err := uc.Create(ctx, params)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Omitting category_ids on update keeps the links.
	p, err = uc.Update(ctx, p.ID, domain.ProductParams{ImageURL: ptr("https://cdn.example.com/uploads/new.webp")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(p.CategoryIDs) != 1 {
		t.Fatalf("expected categories to be kept, got %v", p.CategoryIDs)
	}
	if len(images.removed) != 1 || images.removed[0] != "https://cdn.example.com/uploads/diablo.webp" {
		t.Fatalf("expected replaced image to be removed, got %v", images.removed)
	}

	// The game cannot go while the product stands.
	err = NewGameUsecase(store.Games(), store.SystemRequirements(), clockAt(now)).Delete(ctx, g.ID)
	if errs := fieldErrors(t, err); errs["base"][0] != "Cannot delete record because a dependent product exists" {
		t.Fatalf("unexpected errors %v", errs)
	}

	images.err = errors.New("bucket offline")
	if err := uc.Delete(ctx, p.ID); err != nil {
		t.Fatalf("expected delete to ignore image failures, got %v", err)
	}
	if _, err := uc.Get(ctx, p.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected product to be gone, got %v", err)
	}
}

func TestProductValidatesReferences(t *testing.T) {
	store := memory.NewStore()
	uc := NewProductUsecase(store.Products(), store.Categories(), nil, clockAt(now))

	params := validProduct(77)
	params.Productable = ptr("movie")
	params.CategoryIDs = []int64{5}
	params.Price = ptr(decimal.Zero)
	_, err := uc.Create(context.Background(), params)

	errs := fieldErrors(t, err)
	for _, f := range []string{"productable", "productable_id", "categories", "price"} {
		if !errs.Has(f) {
			t.Fatalf("expected an error on %s, got %v", f, errs)
		}
	}
}

func TestSignInAndEnsureAdmin(t *testing.T) {
	utils.SetSecret("test-secret")
	store := memory.NewStore()
	users := newUserUsecase(store)
	auth := NewAuthUsecase(store.Users(), users, time.Hour)
	ctx := context.Background()

	if err := auth.EnsureAdmin(ctx, "Root", "root@example.com", "rootpass"); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	// A second call is a no-op.
	if err := auth.EnsureAdmin(ctx, "Root", "root@example.com", "rootpass"); err != nil {
		t.Fatalf("ensure admin again: %v", err)
	}
	all, _ := users.List(ctx)
	if len(all) != 1 || !all[0].IsAdmin() {
		t.Fatalf("expected exactly one admin, got %+v", all)
	}

	token, u, err := auth.SignIn(ctx, "ROOT@example.com", "rootpass")
	if err != nil || token == "" || u.ID != all[0].ID {
		t.Fatalf("expected sign in to succeed, got %v", err)
	}

	if _, _, err := auth.SignIn(ctx, "root@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, _, err := auth.SignIn(ctx, "nobody@example.com", "x"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}
