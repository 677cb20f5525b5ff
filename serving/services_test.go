package serving_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/zefrenchwan/standardnames.git/serving"
	"github.com/zefrenchwan/standardnames.git/storage"
	"github.com/zefrenchwan/standardnames.git/tables"
)

const (
	testLogin    = "admin"
	testPassword = "secret"
	testBaseURI  = "https://example.org/tables/fluid#"
)

// memoryStore keeps users and json-ld documents in memory
type memoryStore struct {
	mutex     sync.Mutex
	passwords map[string]string
	secrets   map[string]string
	documents map[string][]byte
	bases     map[string]string
	summaries map[string]storage.TableSummaryDTO
	// saveErr, when set, is returned by SaveTable
	saveErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		passwords: map[string]string{testLogin: testPassword},
		secrets:   map[string]string{testLogin: "signing secret"},
		documents: make(map[string][]byte),
		bases:     make(map[string]string),
		summaries: make(map[string]storage.TableSummaryDTO),
	}
}

func (m *memoryStore) CheckUser(ctx context.Context, login, password string) (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	expected, found := m.passwords[login]
	return found && expected == password, nil
}

func (m *memoryStore) FindSecretForActiveUser(ctx context.Context, login string) (string, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if secret, found := m.secrets[login]; found {
		return secret, nil
	}

	return "", errors.New("no active user " + login)
}

func (m *memoryStore) UpsertUser(ctx context.Context, creator, login, password string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.passwords[login] = password
	m.secrets[login] = login + " secret"
	return nil
}

func (m *memoryStore) failSaves(err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.saveErr = err
}

func (m *memoryStore) SaveTable(ctx context.Context, creator, key string, table *tables.Table, baseURI string) error {
	m.mutex.Lock()
	saveErr := m.saveErr
	m.mutex.Unlock()
	if saveErr != nil {
		return saveErr
	}

	var document bytes.Buffer
	if err := storage.EncodeJSONLD(&document, table, storage.WriteOptions{BaseURI: baseURI}); err != nil {
		return err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.documents[key] = document.Bytes()
	m.bases[key] = baseURI
	m.summaries[key] = storage.NewTableSummaryDTO(key, table, baseURI, time.Now())
	return nil
}

func (m *memoryStore) LoadTable(ctx context.Context, key string, options storage.ParseOptions) (*tables.Table, string, error) {
	m.mutex.Lock()
	document, found := m.documents[key]
	baseURI := m.bases[key]
	m.mutex.Unlock()
	if !found {
		return nil, "", storage.ErrTableNotFound
	}

	options.BaseURI = baseURI
	table, err := storage.ReadJSONLD(bytes.NewReader(document), options)
	return table, baseURI, err
}

func (m *memoryStore) ListTables(ctx context.Context, titleFilter string) ([]storage.TableSummaryDTO, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	var result []storage.TableSummaryDTO
	for _, summary := range m.summaries {
		if strings.Contains(strings.ToLower(summary.Title), strings.ToLower(titleFilter)) {
			result = append(result, summary)
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Id < result[j].Id })
	return result, nil
}

func (m *memoryStore) DeleteTable(ctx context.Context, key string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if _, found := m.documents[key]; !found {
		return storage.ErrTableNotFound
	}

	delete(m.documents, key)
	delete(m.bases, key)
	delete(m.summaries, key)
	return nil
}

func newServer(t *testing.T, store serving.Store) *httptest.Server {
	mux, err := serving.InitService(store, context.Background(), zaptest.NewLogger(t).Sugar(), serving.ServiceOptions{})
	require.NoError(t, err)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func call(t *testing.T, method, url, token string, body io.Reader) (int, []byte) {
	request, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := http.DefaultClient.Do(request)
	require.NoError(t, err)
	defer response.Body.Close()
	content, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	return response.StatusCode, content
}

func login(t *testing.T, server *httptest.Server, user, password string) string {
	input, _ := json.Marshal(serving.UserInformationInput{Username: user, Password: password})
	code, content := call(t, http.MethodPost, server.URL+"/token/", "", bytes.NewReader(input))
	require.Equal(t, http.StatusOK, code, string(content))

	var result serving.TokenResponse
	require.NoError(t, json.Unmarshal(content, &result))
	require.NotEmpty(t, result.Token)
	assert.Equal(t, user, result.User)
	assert.WithinDuration(t, time.Now().Add(serving.TokenDuration), result.ExpiresAt, time.Minute)
	return result.Token
}

func uploadFixture(t *testing.T, server *httptest.Server, token string) {
	fixture, err := os.ReadFile("../storage/testdata/fluid.yaml")
	require.NoError(t, err)

	code, content := call(t, http.MethodPost, server.URL+"/upload/table/yaml/?key=fluid&base_uri="+url.QueryEscape(testBaseURI), token, bytes.NewReader(fixture))
	require.Equal(t, http.StatusCreated, code, string(content))

	var result serving.UploadResponse
	require.NoError(t, json.Unmarshal(content, &result))
	assert.Equal(t, "fluid", result.Table.Id)
	assert.Equal(t, "Fluid standard names", result.Table.Title)
	assert.Equal(t, 4, result.Table.StandardNames)
	assert.Empty(t, result.Warnings)
}

func TestStatus(t *testing.T) {
	server := newServer(t, newMemoryStore())
	code, content := call(t, http.MethodGet, server.URL+"/status", "", nil)
	require.Equal(t, http.StatusOK, code)

	var status serving.CheckStatusResponse
	require.NoError(t, json.Unmarshal(content, &status))
	assert.True(t, status.Active)
	assert.Empty(t, status.Tables)
	assert.Zero(t, status.DerivedNames)
	assert.False(t, status.StrictUnits)

	code, _ = call(t, http.MethodPost, server.URL+"/status/", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	token := login(t, server, testLogin, testPassword)
	uploadFixture(t, server, token)
	code, _ = call(t, http.MethodGet, server.URL+"/names/fluid/x_velocity_in_air/", "", nil)
	require.Equal(t, http.StatusOK, code)

	_, content = call(t, http.MethodGet, server.URL+"/status/", "", nil)
	require.NoError(t, json.Unmarshal(content, &status))
	assert.Equal(t, []string{"fluid"}, status.Tables)
	assert.Positive(t, status.DerivedNames)

	call(t, http.MethodDelete, server.URL+"/delete/table/fluid/", token, nil)
	_, content = call(t, http.MethodGet, server.URL+"/status/", "", nil)
	require.NoError(t, json.Unmarshal(content, &status))
	assert.Empty(t, status.Tables)
	assert.Zero(t, status.DerivedNames)
}

func TestAuthentication(t *testing.T) {
	store := newMemoryStore()
	server := newServer(t, store)

	input, _ := json.Marshal(serving.UserInformationInput{Username: testLogin, Password: "wrong"})
	code, _ := call(t, http.MethodPost, server.URL+"/token/", "", bytes.NewReader(input))
	assert.Equal(t, http.StatusForbidden, code)

	input, _ = json.Marshal(serving.UserInformationInput{Username: " ", Password: testPassword})
	code, _ = call(t, http.MethodPost, server.URL+"/token/", "", bytes.NewReader(input))
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = call(t, http.MethodPost, server.URL+"/token/", "", strings.NewReader("{"))
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	code, _ = call(t, http.MethodPost, server.URL+"/upload/table/yaml/", "", strings.NewReader("name: x"))
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = call(t, http.MethodPost, server.URL+"/upload/table/yaml/", "not.a.token", strings.NewReader("name: x"))
	assert.Equal(t, http.StatusUnauthorized, code)

	token := login(t, server, testLogin, testPassword)
	user, _ := json.Marshal(serving.UserUpsertInput{Username: "editor", Password: "editor password"})
	code, content := call(t, http.MethodPost, server.URL+"/user/upsert/", token, bytes.NewReader(user))
	require.Equal(t, http.StatusNoContent, code, string(content))
	editorToken := login(t, server, "editor", "editor password")

	// changing the secret invalidates previous tokens
	store.mutex.Lock()
	store.secrets["editor"] = "changed"
	store.mutex.Unlock()
	code, _ = call(t, http.MethodPost, server.URL+"/user/upsert/", editorToken, bytes.NewReader(user))
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestUploadAndLookups(t *testing.T) {
	store := newMemoryStore()
	server := newServer(t, store)
	token := login(t, server, testLogin, testPassword)
	uploadFixture(t, server, token)

	var verification storage.VerificationDTO
	code, content := call(t, http.MethodGet, server.URL+"/verify/fluid/x_velocity_in_air/", "", nil)
	require.Equal(t, http.StatusOK, code, string(content))
	require.NoError(t, json.Unmarshal(content, &verification))
	assert.True(t, verification.Valid)

	code, content = call(t, http.MethodGet, server.URL+"/verify/fluid/x_pressure", "", nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(content, &verification))
	assert.Equal(t, "x_pressure", verification.Name)
	assert.False(t, verification.Valid)

	var standardName storage.StandardNameDTO
	code, content = call(t, http.MethodGet, server.URL+"/names/fluid/pressure_in_water/", "", nil)
	require.Equal(t, http.StatusOK, code, string(content))
	require.NoError(t, json.Unmarshal(content, &standardName))
	assert.Equal(t, "pressure_in_water", standardName.Name)
	assert.Equal(t, "Pa", standardName.UnitSymbol)

	code, _ = call(t, http.MethodGet, server.URL+"/names/fluid/unknown_name/", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = call(t, http.MethodGet, server.URL+"/verify/other/x_velocity/", "", nil)
	assert.Equal(t, http.StatusNotFound, code)

	var summaries []storage.TableSummaryDTO
	code, content = call(t, http.MethodGet, server.URL+"/list/tables/?title=FLUID", "", nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(content, &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, testBaseURI, summaries[0].BaseURI)

	// a new server reads the table back from the store
	reloaded := newServer(t, store)
	code, content = call(t, http.MethodGet, reloaded.URL+"/verify/fluid/difference_of_pressure_across_orifice_plate/", "", nil)
	require.Equal(t, http.StatusOK, code, string(content))
	require.NoError(t, json.Unmarshal(content, &verification))
	assert.True(t, verification.Valid)
}

func TestUploadErrors(t *testing.T) {
	server := newServer(t, newMemoryStore())
	token := login(t, server, testLogin, testPassword)

	code, _ := call(t, http.MethodPost, server.URL+"/upload/table/markdown/", token, strings.NewReader("# table"))
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = call(t, http.MethodPost, server.URL+"/upload/table/docx/", token, strings.NewReader("table"))
	assert.Equal(t, http.StatusBadRequest, code)

	fixture, err := os.ReadFile("../storage/testdata/fluid.yaml")
	require.NoError(t, err)
	local := strings.Replace(string(fixture), "identifier: https://doi.org/10.5281/zenodo.000001", "identifier: fluid-local", 1)
	code, content := call(t, http.MethodPost, server.URL+"/upload/table/yaml/", token, strings.NewReader(local))
	assert.Equal(t, http.StatusBadRequest, code, string(content))

	code, content = call(t, http.MethodPost, server.URL+"/upload/table/yaml/", token, strings.NewReader("standard_names: [\n"))
	assert.Equal(t, http.StatusUnprocessableEntity, code, string(content))
}

func TestAddStandardName(t *testing.T) {
	server := newServer(t, newMemoryStore())
	token := login(t, server, testLogin, testPassword)
	uploadFixture(t, server, token)

	post := func(input serving.StandardNameInput, token string) (int, []byte) {
		body, _ := json.Marshal(input)
		return call(t, http.MethodPost, server.URL+"/names/fluid/", token, bytes.NewReader(body))
	}

	code, _ := post(serving.StandardNameInput{Name: "density", Unit: "kg/m3"}, "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, content := post(serving.StandardNameInput{Name: "density", Unit: "kg/m3", Kind: "scalar"}, token)
	require.Equal(t, http.StatusCreated, code, string(content))
	var added storage.StandardNameDTO
	require.NoError(t, json.Unmarshal(content, &added))
	assert.Equal(t, "density", added.Name)
	assert.Equal(t, "scalar", added.Kind)
	assert.NotEmpty(t, added.Id)

	code, _ = call(t, http.MethodGet, server.URL+"/verify/fluid/density_in_air/", "", nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = post(serving.StandardNameInput{Name: "density", Unit: "kg/m3"}, token)
	assert.Equal(t, http.StatusConflict, code)
	code, _ = post(serving.StandardNameInput{Name: "Not Lexical", Unit: "1"}, token)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = post(serving.StandardNameInput{Name: "w_velocity", Unit: "m/s", Verify: true}, token)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	code, content = post(serving.StandardNameInput{Name: "y_velocity", Unit: "m/s", Verify: true}, token)
	assert.Equal(t, http.StatusCreated, code, string(content))
}

func TestAddStandardNameSaveFailure(t *testing.T) {
	store := newMemoryStore()
	server := newServer(t, store)
	token := login(t, server, testLogin, testPassword)
	uploadFixture(t, server, token)

	body, _ := json.Marshal(serving.StandardNameInput{Name: "density", Unit: "kg/m3", Kind: "scalar"})
	store.failSaves(errors.New("connection reset"))
	code, content := call(t, http.MethodPost, server.URL+"/names/fluid/", token, bytes.NewReader(body))
	assert.Equal(t, http.StatusInternalServerError, code, string(content))

	// not saved, so not served either
	code, _ = call(t, http.MethodGet, server.URL+"/names/fluid/density/", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, content = call(t, http.MethodGet, server.URL+"/verify/fluid/density/", "", nil)
	require.Equal(t, http.StatusOK, code)
	var verification storage.VerificationDTO
	require.NoError(t, json.Unmarshal(content, &verification))
	assert.False(t, verification.Valid)

	// once the store is back, the same request succeeds instead of conflicting
	store.failSaves(nil)
	code, content = call(t, http.MethodPost, server.URL+"/names/fluid/", token, bytes.NewReader(body))
	require.Equal(t, http.StatusCreated, code, string(content))
	code, _ = call(t, http.MethodGet, server.URL+"/names/fluid/density/", "", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestExports(t *testing.T) {
	server := newServer(t, newMemoryStore())
	token := login(t, server, testLogin, testPassword)
	uploadFixture(t, server, token)

	code, content := call(t, http.MethodGet, server.URL+"/markdown/fluid/", "", nil)
	require.Equal(t, http.StatusOK, code, string(content))
	assert.True(t, strings.HasPrefix(string(content), "# Fluid standard names"))

	response, err := http.Get(server.URL + "/export/fluid/jsonld/")
	require.NoError(t, err)
	defer response.Body.Close()
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "application/ld+json", response.Header.Get("Content-Type"))
	document, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	again, err := storage.ReadJSONLD(bytes.NewReader(document), storage.ParseOptions{BaseURI: testBaseURI})
	require.NoError(t, err)
	assert.Len(t, again.StandardNames(), 4)

	code, content = call(t, http.MethodGet, server.URL+"/export/fluid/yaml/", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(content), "standard_names:")

	code, _ = call(t, http.MethodGet, server.URL+"/export/fluid/xml/", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = call(t, http.MethodGet, server.URL+"/export/fluid/pdf/", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestDeleteTable(t *testing.T) {
	server := newServer(t, newMemoryStore())
	token := login(t, server, testLogin, testPassword)
	uploadFixture(t, server, token)

	code, _ := call(t, http.MethodDelete, server.URL+"/delete/table/fluid/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = call(t, http.MethodDelete, server.URL+"/delete/table/fluid/", token, nil)
	assert.Equal(t, http.StatusNoContent, code)
	code, _ = call(t, http.MethodDelete, server.URL+"/delete/table/fluid/", token, nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = call(t, http.MethodGet, server.URL+"/verify/fluid/x_velocity/", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestMetrics(t *testing.T) {
	server := newServer(t, newMemoryStore())
	call(t, http.MethodGet, server.URL+"/status/", "", nil)

	code, content := call(t, http.MethodGet, server.URL+"/metrics", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(content), `snt_http_requests_total{code="200",pattern="/status/"} 1`)
}

func TestInitServiceWithoutLogger(t *testing.T) {
	mux, err := serving.InitService(newMemoryStore(), context.Background(), nil, serving.ServiceOptions{StrictUnits: true})
	require.NoError(t, err)
	assert.NotNil(t, mux)
}

// gatedStore blocks the load of the slow table until release is closed
type gatedStore struct {
	*memoryStore
	started chan struct{}
	release chan struct{}
	loads   atomic.Int32
}

func (g *gatedStore) LoadTable(ctx context.Context, key string, options storage.ParseOptions) (*tables.Table, string, error) {
	g.loads.Add(1)
	if key == "slow" {
		g.started <- struct{}{}
		<-g.release
	}

	return g.memoryStore.LoadTable(ctx, key, options)
}

func TestTableRegistryLoadsOutsideLock(t *testing.T) {
	fixture, err := os.Open("../storage/testdata/fluid.yaml")
	require.NoError(t, err)
	defer fixture.Close()
	table, err := storage.ReadYAML(fixture, storage.ParseOptions{BaseURI: testBaseURI})
	require.NoError(t, err)

	store := &gatedStore{memoryStore: newMemoryStore(), started: make(chan struct{}, 1), release: make(chan struct{})}
	require.NoError(t, store.SaveTable(context.Background(), testLogin, "fluid", table, testBaseURI))
	require.NoError(t, store.SaveTable(context.Background(), testLogin, "slow", table, testBaseURI))

	registry, err := serving.NewTableRegistry(store, zaptest.NewLogger(t).Sugar(), false, nil)
	require.NoError(t, err)

	slow := make(chan error, 1)
	go func() {
		_, err := registry.Get(context.Background(), "slow")
		slow <- err
	}()

	<-store.started
	fast := make(chan error, 1)
	go func() {
		_, err := registry.Get(context.Background(), "fluid")
		fast <- err
	}()

	select {
	case err := <-fast:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("loading a table waits for another one")
	}

	close(store.release)
	require.NoError(t, <-slow)
	assert.Equal(t, []string{"fluid", "slow"}, registry.Loaded())

	// loaded once, then served from memory
	first, err := registry.Get(context.Background(), "fluid")
	require.NoError(t, err)
	second, err := registry.Get(context.Background(), "fluid")
	require.NoError(t, err)
	assert.Same(t, first.Table, second.Table)
	assert.Equal(t, int32(2), store.loads.Load())

	_, err = registry.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrTableNotFound)
	assert.Equal(t, []string{"fluid", "slow"}, registry.Loaded())
}
