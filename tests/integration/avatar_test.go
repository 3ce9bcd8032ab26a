package integration

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"

	"github.com/okorolev/pulseblog/tests/integration/setup"
)

func TestAvatarFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	infra, err := setup.StartInfra(ctx, t)
	require.NoError(t, err, "failed to start test infrastructure")
	defer func() {
		_ = infra.Terminate(ctx, t)
	}()

	require.NoError(t, setup.RunMigration(infra.PgURL, t))

	app, db, rds := setup.SetupTestApp(t, infra.PgURL, infra.RedisURL)
	defer db.Close()
	defer func() {
		_ = rds.Close()
	}()

	carol := setup.SeedUser(t, db, ctx, "carol")
	carolToken := setup.AccessTokenFor(t, carol)

	t.Run("public profile", func(t *testing.T) {
		resp, err := app.Test(setup.CreateJSONRequest(http.MethodGet, "/api/users/"+carol.String(), nil), -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		result := setup.ParseJSONResponse(t, resp)
		require.Equal(t, "carol", result["username"])
		require.Equal(t, carol.String(), result["userId"])
	})

	t.Run("bundle before any upload falls back to a generated avatar", func(t *testing.T) {
		resp, err := app.Test(setup.CreateJSONRequest(http.MethodGet, "/api/users/"+carol.String()+"/avatar", nil), -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		result := setup.ParseJSONResponse(t, resp)
		avatars, ok := result["avatars"].([]interface{})
		require.True(t, ok)
		require.Empty(t, avatars)

		dataUrl, _ := result["avatarDataUrl"].(string)
		require.True(t, strings.HasPrefix(dataUrl, "data:image/svg+xml"), "fallback should be an inline identicon")
	})

	var avatarId string

	t.Run("upload avatar", func(t *testing.T) {
		body, _ := sonic.Marshal(map[string]interface{}{
			"dataUrl": setup.CreateTestAvatarDataURL(t),
		})
		resp, err := app.Test(setup.CreateAuthRequest(http.MethodPost, "/api/users/me/avatars", body, carolToken), -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		result := setup.ParseJSONResponse(t, resp)
		avatarId, _ = result["avatarId"].(string)
		require.NotEmpty(t, avatarId)

		dataUrl, _ := result["dataUrl"].(string)
		require.True(t, strings.HasPrefix(dataUrl, "data:image/webp;base64,"), "stored avatar should be normalized to webp")
	})

	t.Run("upload without payload is rejected", func(t *testing.T) {
		body, _ := sonic.Marshal(map[string]interface{}{"dataUrl": ""})
		resp, err := app.Test(setup.CreateAuthRequest(http.MethodPost, "/api/users/me/avatars", body, carolToken), -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		_, _, param := setup.ParseErrorDetail(t, setup.ParseJSONResponse(t, resp))
		require.Equal(t, "dataUrl", param)
	})

	t.Run("set active avatar and read it back from the bundle", func(t *testing.T) {
		resp, err := app.Test(setup.CreateAuthRequest(http.MethodPut, "/api/users/me/avatars/"+avatarId+"/active", nil, carolToken), -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp, err = app.Test(setup.CreateJSONRequest(http.MethodGet, "/api/users/"+carol.String()+"/avatar", nil), -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		result := setup.ParseJSONResponse(t, resp)
		require.Equal(t, avatarId, result["activeAvatarId"])

		dataUrl, _ := result["avatarDataUrl"].(string)
		require.True(t, strings.HasPrefix(dataUrl, "data:image/webp;base64,"))
	})

	t.Run("activating an avatar you do not own is a 404", func(t *testing.T) {
		resp, err := app.Test(setup.CreateAuthRequest(http.MethodPut, "/api/users/me/avatars/1e6ba499-0000-0000-0000-000000000002/active", nil, carolToken), -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("recent avatars move to front", func(t *testing.T) {
		// A second avatar so the recents list has something to reorder.
		body, _ := sonic.Marshal(map[string]interface{}{
			"dataUrl": setup.CreateTestAvatarDataURL(t),
		})
		resp, err := app.Test(setup.CreateAuthRequest(http.MethodPost, "/api/users/me/avatars", body, carolToken), -1)
		require.NoError(t, err)
		secondId, _ := setup.ParseJSONResponse(t, resp)["avatarId"].(string)
		require.NotEmpty(t, secondId)

		for _, id := range []string{avatarId, secondId, avatarId} {
			saveBody, _ := sonic.Marshal(map[string]interface{}{"avatarId": id})
			resp, err = app.Test(setup.CreateAuthRequest(http.MethodPost, "/api/users/me/avatars/recents", saveBody, carolToken), -1)
			require.NoError(t, err)
			require.Equal(t, http.StatusOK, resp.StatusCode)
		}

		resp, err = app.Test(setup.CreateAuthRequest(http.MethodGet, "/api/users/me/avatars/recents", nil, carolToken), -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		result := setup.ParseJSONResponse(t, resp)
		recents, ok := result["recents"].([]interface{})
		require.True(t, ok)
		require.Len(t, recents, 2)

		first := recents[0].(map[string]interface{})
		second := recents[1].(map[string]interface{})
		require.Equal(t, avatarId, first["avatarId"], "re-used avatar should be back at the front")
		require.Equal(t, secondId, second["avatarId"])
	})

	t.Run("deleting the active avatar clears the selection", func(t *testing.T) {
		resp, err := app.Test(setup.CreateAuthRequest(http.MethodDelete, "/api/users/me/avatars/"+avatarId, nil, carolToken), -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp, err = app.Test(setup.CreateJSONRequest(http.MethodGet, "/api/users/"+carol.String()+"/avatar", nil), -1)
		require.NoError(t, err)
		result := setup.ParseJSONResponse(t, resp)
		require.Nil(t, result["activeAvatarId"])

		avatars := result["avatars"].([]interface{})
		require.Len(t, avatars, 1, "only the second avatar should remain")

		// Deleted avatars also fall out of the recents list on read.
		resp, err = app.Test(setup.CreateAuthRequest(http.MethodGet, "/api/users/me/avatars/recents", nil, carolToken), -1)
		require.NoError(t, err)
		recents := setup.ParseJSONResponse(t, resp)["recents"].([]interface{})
		require.Len(t, recents, 1)
	})
}
