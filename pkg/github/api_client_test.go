package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wferrors "github.com/jeiman/git-workflow/pkg/errors"
)

func newTestClient(t *testing.T, handler http.Handler) (*APIClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewAPIClient("test-token", false, WithBaseURL(server.URL+"/"))
	require.NoError(t, err)
	return client, server
}

func TestNewAPIClient_EmptyToken(t *testing.T) {
	_, err := NewAPIClient("", false)
	assert.Error(t, err, "NewAPIClient with empty token should return error")
}

func TestNewBasicAuthClient_MissingFields(t *testing.T) {
	_, err := NewBasicAuthClient("", "token", false)
	assert.Error(t, err)

	_, err = NewBasicAuthClient("user", "", false)
	assert.Error(t, err)

	client, err := NewBasicAuthClient("user", "token", false)
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestCreatePR_Success(t *testing.T) {
	var gotPath, gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{
			"id": 42,
			"number": 7,
			"title": "Add sync checker",
			"html_url": "https://github.com/jeiman/git-workflow/pull/7",
			"head": {"ref": "feature-x"},
			"base": {"ref": "main"}
		}`))
	}))

	pr, err := client.CreatePR(context.Background(), Repo{Owner: "jeiman", Name: "git-workflow"}, CreatePROptions{
		Title:      "Add sync checker",
		Body:       "body",
		HeadBranch: "feature-x",
		BaseBranch: "main",
	})
	require.NoError(t, err)

	assert.Equal(t, "/repos/jeiman/git-workflow/pulls", gotPath)
	assert.NotEmpty(t, gotAuth)
	assert.Equal(t, int64(42), pr.ID)
	assert.Equal(t, 7, pr.Number)
	assert.Equal(t, "https://github.com/jeiman/git-workflow/pull/7", pr.URL)
	assert.Equal(t, "feature-x", pr.HeadBranch)
	assert.Equal(t, "main", pr.BaseBranch)
}

func TestCreatePR_ValidationFailure(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{
			"message": "Validation Failed",
			"errors": [{"message": "A pull request already exists for jeiman:feature-x."}]
		}`))
	}))

	_, err := client.CreatePR(context.Background(), Repo{Owner: "jeiman", Name: "git-workflow"}, CreatePROptions{
		Title:      "dup",
		HeadBranch: "feature-x",
		BaseBranch: "main",
	})
	require.Error(t, err)

	var ghErr *wferrors.GitHubError
	require.True(t, wferrors.As(err, &ghErr))
	assert.Equal(t, 422, ghErr.StatusCode)
	assert.Contains(t, ghErr.Message, "A pull request already exists")
}

func TestCreatePR_ServerError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.CreatePR(context.Background(), Repo{Owner: "o", Name: "r"}, CreatePROptions{
		Title:      "t",
		HeadBranch: "h",
		BaseBranch: "b",
	})
	require.Error(t, err)

	var ghErr *wferrors.GitHubError
	require.True(t, wferrors.As(err, &ghErr))
	assert.Equal(t, 500, ghErr.StatusCode)
	assert.True(t, ghErr.Retryable)
}

func TestCreatePR_MissingFields(t *testing.T) {
	client, err := NewAPIClient("test-token", false)
	require.NoError(t, err)

	_, err = client.CreatePR(context.Background(), Repo{Owner: "o", Name: "r"}, CreatePROptions{})
	assert.Error(t, err, "missing title should fail before any request")

	_, err = client.CreatePR(context.Background(), Repo{Owner: "o", Name: "r"}, CreatePROptions{Title: "t"})
	assert.Error(t, err, "missing branches should fail before any request")
}

func TestRequestReviewers(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"number": 7}`))
	}))

	err := client.RequestReviewers(context.Background(), Repo{Owner: "jeiman", Name: "git-workflow"}, 7, []string{"alice", "bob"})
	require.NoError(t, err)
	assert.Equal(t, "/repos/jeiman/git-workflow/pulls/7/requested_reviewers", gotPath)
}

func TestRequestReviewers_EmptyListIsNoOp(t *testing.T) {
	requests := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))

	err := client.RequestReviewers(context.Background(), Repo{Owner: "o", Name: "r"}, 1, nil)
	require.NoError(t, err)
	assert.Zero(t, requests)
}

func TestRequestReviewers_Failure(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message": "Reviews may only be requested from collaborators"}`))
	}))

	err := client.RequestReviewers(context.Background(), Repo{Owner: "o", Name: "r"}, 1, []string{"stranger"})
	require.Error(t, err)

	var ghErr *wferrors.GitHubError
	require.True(t, wferrors.As(err, &ghErr))
	assert.Contains(t, ghErr.Message, "collaborators")
}
