package v1

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gamestore-admin/internal/delivery/http/middleware"
	"gamestore-admin/internal/domain"
	"gamestore-admin/internal/infrastructure/cache"
	"gamestore-admin/internal/repository/memory"
	"gamestore-admin/internal/usecase"
	"gamestore-admin/pkg/utils"

	"github.com/goccy/go-json"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type testAPI struct {
	handler http.Handler
	store   *memory.Store
	auth    *usecase.AuthUsecase
	token   string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	utils.SetSecret("router-test-secret")

	store := memory.NewStore()
	clock := func() time.Time { return testNow }
	users := usecase.NewUserUsecase(store.Users(), clock)
	auth := usecase.NewAuthUsecase(store.Users(), users, time.Hour)

	mux := http.NewServeMux()
	RegisterRoutes(mux, Handlers{
		Auth:               NewAuthHandler(auth, time.Hour, false),
		Coupons:            NewCouponHandler(usecase.NewCouponUsecase(store.Coupons(), clock)),
		Licenses:           NewLicenseHandler(usecase.NewLicenseUsecase(store.Licenses(), store.Games(), clock)),
		Users:              NewUserHandler(users),
		SystemRequirements: NewSystemRequirementHandler(usecase.NewSystemRequirementUsecase(store.SystemRequirements(), clock)),
		Games:              NewGameHandler(usecase.NewGameUsecase(store.Games(), store.SystemRequirements(), clock)),
		Categories:         NewCategoryHandler(usecase.NewCategoryUsecase(store.Categories(), clock)),
		Products:           NewProductHandler(usecase.NewProductUsecase(store.Products(), store.Categories(), nil, clock)),
		Uploads:            NewUploadHandler(nil, 1),
		Config:             NewConfigHandler(cache.NewMemoryCache(time.Minute), time.Minute),
	}, middleware.Admin)

	token, err := utils.GenerateJWT(1, "admin@example.com", domain.ProfileAdmin, time.Hour)
	if err != nil {
		t.Fatalf("expected token, got %v", err)
	}
	return &testAPI{handler: mux, store: store, auth: auth, token: token}
}

func (a *testAPI) request(t *testing.T, method, path, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	return a.request(t, method, path, body, true)
}

func (a *testAPI) couponCount(t *testing.T) int {
	t.Helper()
	coupons, err := a.store.Coupons().List(context.Background())
	if err != nil {
		t.Fatalf("list coupons: %v", err)
	}
	return len(coupons)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("expected JSON body, got %q: %v", rec.Body.String(), err)
	}
	return body
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func expectBody(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()
	if got := strings.TrimSpace(rec.Body.String()); got != want {
		t.Fatalf("expected body %s, got %s", want, got)
	}
}

const validCouponBody = `{"coupon":{"code":"Basic-1","status":"active","discount_value":"10.5","due_date":"2030-01-01T00:00:00Z"}}`

func TestCreateCoupon(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/admin/v1/coupons", validCouponBody)
	expectStatus(t, rec, http.StatusOK)
	expectBody(t, rec, `{"coupon":{"id":1,"code":"Basic-1","status":"active","discount_value":"10.5","due_date":"2030-01-01T00:00:00Z"}}`)

	if n := api.couponCount(t); n != 1 {
		t.Fatalf("expected 1 coupon, got %d", n)
	}
}

func TestCreateCouponMissingFields(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/admin/v1/coupons", `{"coupon":{}}`)
	expectStatus(t, rec, http.StatusUnprocessableEntity)
	expectBody(t, rec, `{"errors":{"fields":{"code":["can't be blank"],"discount_value":["can't be blank"],"due_date":["can't be blank"],"status":["can't be blank"]}}}`)

	if n := api.couponCount(t); n != 0 {
		t.Fatalf("expected no coupons, got %d", n)
	}
}

func TestCreateCouponWithoutRootKey(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/admin/v1/coupons", `{"code":"Basic-1"}`)
	expectStatus(t, rec, http.StatusUnprocessableEntity)
	if fields := decode(t, rec)["errors"].(map[string]any)["fields"].(map[string]any); fields["code"] == nil {
		t.Fatalf("expected code error, got %v", fields)
	}
}

func TestCreateCouponIgnoresUnpermittedFields(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/admin/v1/coupons",
		`{"coupon":{"id":99,"code":"X1","status":"active","discount_value":5,"due_date":"2030-01-01","created_at":"x","admin":true}}`)
	expectStatus(t, rec, http.StatusOK)

	coupon := decode(t, rec)["coupon"].(map[string]any)
	if coupon["id"].(float64) != 1 {
		t.Fatalf("expected the store to assign id 1, got %v", coupon["id"])
	}
	if _, ok := coupon["created_at"]; ok {
		t.Fatal("expected timestamps not to be rendered")
	}
}

func TestCouponTypeMismatch(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/admin/v1/coupons",
		`{"coupon":{"code":"X1","status":"active","discount_value":"ten","due_date":"someday"}}`)
	expectStatus(t, rec, http.StatusUnprocessableEntity)
	expectBody(t, rec, `{"errors":{"fields":{"discount_value":["is not a number"],"due_date":["is invalid"]}}}`)
}

func TestCouponDueDateMustBeInTheFuture(t *testing.T) {
	api := newTestAPI(t)

	for _, due := range []string{"2024-06-01T12:00:00Z", "2020-01-01"} {
		rec := api.do(t, http.MethodPost, "/admin/v1/coupons",
			`{"coupon":{"code":"X1","status":"active","discount_value":"1","due_date":"`+due+`"}}`)
		expectStatus(t, rec, http.StatusUnprocessableEntity)
		expectBody(t, rec, `{"errors":{"fields":{"due_date":["must be after current date"]}}}`)
	}

	rec := api.do(t, http.MethodPost, "/admin/v1/coupons",
		`{"coupon":{"code":"X1","status":"active","discount_value":"1","due_date":"02/06/2024 - 08:00:00"}}`)
	expectStatus(t, rec, http.StatusOK)
}

func TestDatesWithoutOffsetUseConfiguredZone(t *testing.T) {
	api := newTestAPI(t)
	SetTimeZone(time.FixedZone("BRT", -3*60*60))
	t.Cleanup(func() { SetTimeZone(time.UTC) })

	// 10:00 BRT is 13:00 UTC, an hour after testNow
	rec := api.do(t, http.MethodPost, "/admin/v1/coupons",
		`{"coupon":{"code":"X1","status":"active","discount_value":"1","due_date":"01/06/2024 - 10:00:00"}}`)
	expectStatus(t, rec, http.StatusOK)

	stored, err := api.store.Coupons().GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("get coupon: %v", err)
	}
	if want := time.Date(2024, 6, 1, 13, 0, 0, 0, time.UTC); !stored.DueDate.Equal(want) {
		t.Fatalf("expected due date %v, got %v", want, stored.DueDate.UTC())
	}

	// an explicit offset still wins
	rec = api.do(t, http.MethodPost, "/admin/v1/coupons",
		`{"coupon":{"code":"X2","status":"active","discount_value":"1","due_date":"2024-06-01T10:00:00Z"}}`)
	expectStatus(t, rec, http.StatusUnprocessableEntity)
}

func TestCouponCodeUniqueIgnoringCase(t *testing.T) {
	api := newTestAPI(t)
	expectStatus(t, api.do(t, http.MethodPost, "/admin/v1/coupons", validCouponBody), http.StatusOK)

	rec := api.do(t, http.MethodPost, "/admin/v1/coupons", strings.Replace(validCouponBody, "Basic-1", "basic-1", 1))
	expectStatus(t, rec, http.StatusUnprocessableEntity)
	expectBody(t, rec, `{"errors":{"fields":{"code":["has already been taken"]}}}`)

	// updating a coupon with its own code is fine
	expectStatus(t, api.do(t, http.MethodPatch, "/admin/v1/coupons/1", `{"coupon":{"code":"BASIC-1"}}`), http.StatusOK)
}

func TestCouponDiscountIsKeptToCents(t *testing.T) {
	api := newTestAPI(t)
	coupon := func(code, discount string) string {
		return `{"coupon":{"code":"` + code + `","status":"active","discount_value":"` + discount + `","due_date":"2030-01-01T00:00:00Z"}}`
	}

	rec := api.do(t, http.MethodPost, "/admin/v1/coupons", coupon("X1", "12.345"))
	expectStatus(t, rec, http.StatusOK)
	expectBody(t, rec, `{"coupon":{"id":1,"code":"X1","status":"active","discount_value":"12.35","due_date":"2030-01-01T00:00:00Z"}}`)

	// rounds to 0.00, which is not a discount
	rec = api.do(t, http.MethodPost, "/admin/v1/coupons", coupon("X2", "0.001"))
	expectStatus(t, rec, http.StatusUnprocessableEntity)
	expectBody(t, rec, `{"errors":{"fields":{"discount_value":["must be greater than 0"]}}}`)

	for _, discount := range []string{"100000000", "99999999.999"} {
		rec = api.do(t, http.MethodPost, "/admin/v1/coupons", coupon("X3", discount))
		expectStatus(t, rec, http.StatusUnprocessableEntity)
		expectBody(t, rec, `{"errors":{"fields":{"discount_value":["must be less than 100000000"]}}}`)
	}

	rec = api.do(t, http.MethodPatch, "/admin/v1/coupons/1", `{"coupon":{"discount_value":"1e9"}}`)
	expectStatus(t, rec, http.StatusUnprocessableEntity)
	if n := api.couponCount(t); n != 1 {
		t.Fatalf("expected 1 coupon, got %d", n)
	}
}

func TestUpdateCouponIsPartial(t *testing.T) {
	api := newTestAPI(t)
	expectStatus(t, api.do(t, http.MethodPost, "/admin/v1/coupons", validCouponBody), http.StatusOK)

	rec := api.do(t, http.MethodPatch, "/admin/v1/coupons/1", `{"coupon":{"status":"inactive"}}`)
	expectStatus(t, rec, http.StatusOK)
	expectBody(t, rec, `{"coupon":{"id":1,"code":"Basic-1","status":"inactive","discount_value":"10.5","due_date":"2030-01-01T00:00:00Z"}}`)
}

func TestUpdateCouponInvalidKeepsStoredRow(t *testing.T) {
	api := newTestAPI(t)
	expectStatus(t, api.do(t, http.MethodPost, "/admin/v1/coupons", validCouponBody), http.StatusOK)

	rec := api.do(t, http.MethodPatch, "/admin/v1/coupons/1", `{"coupon":{"status":"expired"}}`)
	expectStatus(t, rec, http.StatusUnprocessableEntity)

	stored, err := api.store.Coupons().GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("get coupon: %v", err)
	}
	if stored.Status != domain.CouponStatusActive {
		t.Fatalf("expected status to stay active, got %q", stored.Status)
	}
}

func TestDeleteCoupon(t *testing.T) {
	api := newTestAPI(t)
	expectStatus(t, api.do(t, http.MethodPost, "/admin/v1/coupons", validCouponBody), http.StatusOK)

	rec := api.do(t, http.MethodDelete, "/admin/v1/coupons/1", "")
	expectStatus(t, rec, http.StatusNoContent)
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rec.Body.String())
	}
	if n := api.couponCount(t); n != 0 {
		t.Fatalf("expected no coupons, got %d", n)
	}
}

func TestDeleteUnknownCoupon(t *testing.T) {
	api := newTestAPI(t)
	expectStatus(t, api.do(t, http.MethodPost, "/admin/v1/coupons", validCouponBody), http.StatusOK)

	for _, path := range []string{"/admin/v1/coupons/42", "/admin/v1/coupons/abc"} {
		rec := api.do(t, http.MethodDelete, path, "")
		expectStatus(t, rec, http.StatusNotFound)
		expectBody(t, rec, `{"errors":{"fields":{"id":["not found"]}}}`)
	}
	if n := api.couponCount(t); n != 1 {
		t.Fatalf("expected 1 coupon, got %d", n)
	}
}

func TestUnauthenticatedRequestsNeverReachTheStore(t *testing.T) {
	api := newTestAPI(t)

	rec := api.request(t, http.MethodPost, "/admin/v1/coupons", validCouponBody, false)
	expectStatus(t, rec, http.StatusUnauthorized)
	if n := api.couponCount(t); n != 0 {
		t.Fatalf("expected no coupons, got %d", n)
	}
}

func TestMalformedJSON(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/admin/v1/coupons", `{"coupon":`)
	expectStatus(t, rec, http.StatusBadRequest)
	expectBody(t, rec, `{"errors":{"fields":{"base":["Malformed JSON body"]}}}`)
}

func TestListCoupons(t *testing.T) {
	api := newTestAPI(t)

	expectBody(t, api.do(t, http.MethodGet, "/admin/v1/coupons", ""), `{"coupons":[]}`)

	expectStatus(t, api.do(t, http.MethodPost, "/admin/v1/coupons", validCouponBody), http.StatusOK)
	coupons := decode(t, api.do(t, http.MethodGet, "/admin/v1/coupons", ""))["coupons"].([]any)
	if len(coupons) != 1 {
		t.Fatalf("expected 1 coupon, got %d", len(coupons))
	}
}

func TestUsersNeverRenderPasswords(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/admin/v1/users",
		`{"user":{"name":"Ana","email":" Ana@Example.com ","profile":"client","password":"secret1","password_confirmation":"secret1"}}`)
	expectStatus(t, rec, http.StatusOK)
	expectBody(t, rec, `{"user":{"id":1,"name":"Ana","email":"ana@example.com","profile":"client"}}`)

	list := api.do(t, http.MethodGet, "/admin/v1/users", "")
	if strings.Contains(list.Body.String(), "password") {
		t.Fatalf("expected no password in %s", list.Body.String())
	}

	rec = api.do(t, http.MethodPatch, "/admin/v1/users/1", `{"user":{"password":"other12","password_confirmation":"nope"}}`)
	expectStatus(t, rec, http.StatusUnprocessableEntity)
	expectBody(t, rec, `{"errors":{"fields":{"password_confirmation":["doesn't match Password"]}}}`)
}

func seedGame(t *testing.T, api *testAPI) {
	t.Helper()
	expectStatus(t, api.do(t, http.MethodPost, "/admin/v1/system_requirements",
		`{"system_requirement":{"name":"Basic","operational_system":"Windows 10","storage":"50GB","processor":"i5","memory":"8GB","video_board":"GTX 1050"}}`), http.StatusOK)
	expectStatus(t, api.do(t, http.MethodPost, "/admin/v1/games",
		`{"game":{"mode":"pvp","release_date":"2020-01-01","developer":"Blizzard","system_requirement_id":1}}`), http.StatusOK)
}

func TestSystemRequirementInUseCannotBeDeleted(t *testing.T) {
	api := newTestAPI(t)
	seedGame(t, api)

	rec := api.do(t, http.MethodDelete, "/admin/v1/system_requirements/1", "")
	expectStatus(t, rec, http.StatusUnprocessableEntity)
	expectBody(t, rec, `{"errors":{"fields":{"base":["Cannot delete record because dependent games exist"]}}}`)
}

func TestSystemRequirementNameUniqueIgnoringCase(t *testing.T) {
	api := newTestAPI(t)
	body := `{"system_requirement":{"name":"Basic-1","operational_system":"Windows 10","storage":"50GB","processor":"i5","memory":"8GB","video_board":"GTX 1050"}}`
	expectStatus(t, api.do(t, http.MethodPost, "/admin/v1/system_requirements", body), http.StatusOK)

	rec := api.do(t, http.MethodPost, "/admin/v1/system_requirements", strings.Replace(body, "Basic-1", "basic-1", 1))
	expectStatus(t, rec, http.StatusUnprocessableEntity)
	expectBody(t, rec, `{"errors":{"fields":{"name":["has already been taken"]}}}`)
}

func TestGameRequiresExistingSystemRequirement(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/admin/v1/games",
		`{"game":{"mode":"pvp","release_date":"2020-01-01","developer":"Blizzard","system_requirement_id":9}}`)
	expectStatus(t, rec, http.StatusUnprocessableEntity)
	expectBody(t, rec, `{"errors":{"fields":{"system_requirement":["must exist"]}}}`)
}

func TestLicensesOfUnknownGame(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/admin/v1/games/7/licenses", "")
	expectStatus(t, rec, http.StatusNotFound)
	expectBody(t, rec, `{"errors":{"fields":{"game_id":["not found"]}}}`)
}

func TestLicenseListSearchOrderAndMeta(t *testing.T) {
	api := newTestAPI(t)
	seedGame(t, api)

	for _, key := range []string{"AAA-111", "BBB-222", "AAA-333"} {
		expectStatus(t, api.do(t, http.MethodPost, "/admin/v1/games/1/licenses",
			`{"license":{"key":"`+key+`","platform":"steam","status":"available","game_id":99}}`), http.StatusOK)
	}

	rec := api.do(t, http.MethodGet, "/admin/v1/games/1/licenses?search=aaa&order[key]=desc&page=1&length=1", "")
	expectStatus(t, rec, http.StatusOK)
	expectBody(t, rec, `{"licenses":[{"id":3,"key":"AAA-333","platform":"steam","status":"available","game_id":1}],"meta":{"page":1,"length":1,"total":2,"total_pages":2}}`)

	// an unknown order column falls back to id
	rec = api.do(t, http.MethodGet, "/admin/v1/games/1/licenses?order[secret]=desc", "")
	licenses := decode(t, rec)["licenses"].([]any)
	if first := licenses[0].(map[string]any)["key"]; first != "AAA-111" {
		t.Fatalf("expected id order, got first key %v", first)
	}
}

func TestLicenseListUsesFirstOrderParam(t *testing.T) {
	api := newTestAPI(t)
	seedGame(t, api)
	for _, key := range []string{"AAA-111", "BBB-222"} {
		expectStatus(t, api.do(t, http.MethodPost, "/admin/v1/games/1/licenses",
			`{"license":{"key":"`+key+`","platform":"steam","status":"available"}}`), http.StatusOK)
	}

	cases := map[string]string{
		"order[status]=asc&order[key]=desc": "AAA-111",
		"order[key]=desc&order[status]=asc": "BBB-222",
	}
	for query, want := range cases {
		for range 10 {
			rec := api.do(t, http.MethodGet, "/admin/v1/games/1/licenses?"+query, "")
			expectStatus(t, rec, http.StatusOK)
			licenses := decode(t, rec)["licenses"].([]any)
			if first := licenses[0].(map[string]any)["key"]; first != want {
				t.Fatalf("%s: expected first key %s, got %v", query, want, first)
			}
		}
	}
}

func TestListPageBeyondRange(t *testing.T) {
	api := newTestAPI(t)
	seedGame(t, api)

	rec := api.do(t, http.MethodGet, "/admin/v1/games/1/licenses?page=92233720368547800&length=100", "")
	expectStatus(t, rec, http.StatusOK)
	expectBody(t, rec, `{"licenses":[],"meta":{"page":92233720368547758,"length":100,"total":0,"total_pages":0}}`)

	rec = api.do(t, http.MethodGet, "/admin/v1/games?page=9223372036854775807&length=1", "")
	expectStatus(t, rec, http.StatusOK)
	if games := decode(t, rec)["games"].([]any); len(games) != 0 {
		t.Fatalf("expected no games, got %v", games)
	}
}

func TestLicenseShowAndDelete(t *testing.T) {
	api := newTestAPI(t)
	seedGame(t, api)
	expectStatus(t, api.do(t, http.MethodPost, "/admin/v1/games/1/licenses",
		`{"license":{"key":"K-1","platform":"origin","status":"in_use"}}`), http.StatusOK)

	expectBody(t, api.do(t, http.MethodGet, "/admin/v1/licenses/1", ""),
		`{"license":{"id":1,"key":"K-1","platform":"origin","status":"in_use","game_id":1}}`)
	expectStatus(t, api.do(t, http.MethodDelete, "/admin/v1/licenses/1", ""), http.StatusNoContent)
	expectStatus(t, api.do(t, http.MethodGet, "/admin/v1/licenses/1", ""), http.StatusNotFound)
}

func TestProductLifecycle(t *testing.T) {
	api := newTestAPI(t)
	seedGame(t, api)
	expectStatus(t, api.do(t, http.MethodPost, "/admin/v1/categories", `{"category":{"name":"RPG"}}`), http.StatusOK)
	expectStatus(t, api.do(t, http.MethodPost, "/admin/v1/categories", `{"category":{"name":"Action"}}`), http.StatusOK)

	rec := api.do(t, http.MethodPost, "/admin/v1/products",
		`{"product":{"name":"Diablo","description":"ARPG","price":"59.9","status":"available","image_url":"https://cdn.example.com/d.webp","productable":"game","productable_id":1,"category_ids":[2,1,1]}}`)
	expectStatus(t, rec, http.StatusOK)
	expectBody(t, rec, `{"product":{"id":1,"name":"Diablo","description":"ARPG","price":"59.9","status":"available","image_url":"https://cdn.example.com/d.webp","productable":"game","productable_id":1,"category_ids":[1,2]}}`)

	// the game now backs a product
	rec = api.do(t, http.MethodDelete, "/admin/v1/games/1", "")
	expectStatus(t, rec, http.StatusUnprocessableEntity)
	expectBody(t, rec, `{"errors":{"fields":{"base":["Cannot delete record because a dependent product exists"]}}}`)

	rec = api.do(t, http.MethodPatch, "/admin/v1/products/1", `{"product":{"category_ids":[3]}}`)
	expectStatus(t, rec, http.StatusUnprocessableEntity)
	expectBody(t, rec, `{"errors":{"fields":{"categories":["must exist"]}}}`)

	rec = api.do(t, http.MethodGet, "/admin/v1/products?search=dia", "")
	if meta := decode(t, rec)["meta"].(map[string]any); meta["total"].(float64) != 1 {
		t.Fatalf("expected 1 product, got %v", meta)
	}

	expectStatus(t, api.do(t, http.MethodDelete, "/admin/v1/products/1", ""), http.StatusNoContent)
	expectStatus(t, api.do(t, http.MethodDelete, "/admin/v1/games/1", ""), http.StatusNoContent)
}

func TestSignIn(t *testing.T) {
	api := newTestAPI(t)
	if err := api.auth.EnsureAdmin(context.Background(), "Admin", "root@example.com", "secret123"); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}

	rec := api.request(t, http.MethodPost, "/auth/v1/sign_in", `{"email":"ROOT@example.com","password":"secret123"}`, false)
	expectStatus(t, rec, http.StatusOK)
	body := decode(t, rec)
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("expected a token, got %v", body)
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Fatal("expected the access token cookie")
	}

	api.token = token
	expectStatus(t, api.do(t, http.MethodGet, "/admin/v1/coupons", ""), http.StatusOK)

	rec = api.request(t, http.MethodPost, "/auth/v1/sign_in", `{"email":"root@example.com","password":"wrong"}`, false)
	expectStatus(t, rec, http.StatusUnauthorized)
}

func TestEnumsAreServed(t *testing.T) {
	api := newTestAPI(t)

	for range 2 {
		rec := api.do(t, http.MethodGet, "/admin/v1/config/enums", "")
		expectStatus(t, rec, http.StatusOK)
		platforms := decode(t, rec)["license_platforms"].([]any)
		if len(platforms) != len(domain.LicensePlatforms) {
			t.Fatalf("expected %d platforms, got %v", len(domain.LicensePlatforms), platforms)
		}
	}
}

func TestUploadWithoutStorage(t *testing.T) {
	api := newTestAPI(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, _ := mw.CreateFormFile("file", "cover.png")
	part.Write([]byte("not really a png"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/admin/v1/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+api.token)
	rec := httptest.NewRecorder()
	api.handler.ServeHTTP(rec, req)

	expectStatus(t, rec, http.StatusServiceUnavailable)
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)
	expectStatus(t, api.request(t, http.MethodGet, "/health", "", false), http.StatusOK)
}
