// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package subsonic

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/spezifisch/stpod/logger"
)

// ErrServer wraps failures the server reported inside a 200 response.
var ErrServer = errors.New("server reported an error")

type Connection struct {
	Username      string
	Password      string
	Host          string
	PlaintextAuth bool

	clientName    string
	clientVersion string

	client *http.Client
	logger logger.LoggerInterface
}

func Init(logger logger.LoggerInterface) *Connection {
	return &Connection{
		clientName:    "example",
		clientVersion: "1.8.0",

		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

func (connection *Connection) SetClientInfo(name, version string) {
	connection.clientName = name
	connection.clientVersion = version
}

// authToken returns the subsonic token auth pair: md5(password+salt) and the salt.
func authToken(password string) (string, string) {
	salt := uuid.NewString()
	return tokenFor(password, salt), salt
}

func tokenFor(password, salt string) string {
	sum := md5.Sum([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}

func defaultQuery(connection *Connection) url.Values {
	query := url.Values{}
	if connection.PlaintextAuth {
		query.Set("p", connection.Password)
	} else {
		token, salt := authToken(connection.Password)
		query.Set("t", token)
		query.Set("s", salt)
	}
	query.Set("u", connection.Username)
	query.Set("v", connection.clientVersion)
	query.Set("c", connection.clientName)
	query.Set("f", "json")

	return query
}

// GetServerInfo pings the server and returns the response, which contains basic
// information about the server
// https://opensubsonic.netlify.app/docs/endpoints/ping/
func (connection *Connection) GetServerInfo() (Response, error) {
	query := defaultQuery(connection)
	requestUrl := connection.Host + "/rest/ping" + "?" + query.Encode()
	return connection.GetResponse("GetServerInfo", requestUrl)
}

// GetPodcasts returns all podcast channels with their episodes.
// https://opensubsonic.netlify.app/docs/endpoints/getpodcasts/
func (connection *Connection) GetPodcasts() ([]PodcastChannel, error) {
	query := defaultQuery(connection)
	query.Set("includeEpisodes", "true")
	requestUrl := connection.Host + "/rest/getPodcasts" + "?" + query.Encode()
	resp, err := connection.GetResponse("GetPodcasts", requestUrl)
	return resp.Podcasts.Channels, err
}

// GetNewestPodcasts returns the most recently published episodes across all channels.
// https://opensubsonic.netlify.app/docs/endpoints/getnewestpodcasts/
func (connection *Connection) GetNewestPodcasts(count int) ([]PodcastEpisode, error) {
	query := defaultQuery(connection)
	query.Set("count", strconv.Itoa(count))
	requestUrl := connection.Host + "/rest/getNewestPodcasts" + "?" + query.Encode()
	resp, err := connection.GetResponse("GetNewestPodcasts", requestUrl)
	return resp.NewestPodcasts.Episodes, err
}

// note that this function does not make a request, it just formats the play url
// to pass to mpv
func (connection *Connection) GetPlayUrl(streamId Id) string {
	if streamId == "" {
		return ""
	}
	query := defaultQuery(connection)
	query.Set("id", string(streamId))
	return connection.Host + "/rest/stream" + "?" + query.Encode()
}

// GetCoverArtUrl formats the artwork url of a channel or episode.
func (connection *Connection) GetCoverArtUrl(coverArtId string) string {
	if coverArtId == "" {
		return ""
	}
	query := defaultQuery(connection)
	query.Set("id", coverArtId)
	return connection.Host + "/rest/getCoverArt" + "?" + query.Encode()
}

func (connection *Connection) GetResponse(caller, requestUrl string) (Response, error) {
	zero := Response{}
	client := connection.client
	if client == nil {
		client = http.DefaultClient
	}

	res, err := client.Get(requestUrl)
	if err != nil {
		return zero, errors.Wrapf(err, "[%s] failed to make GET request", caller)
	}

	if res.Body != nil {
		defer res.Body.Close()
	} else {
		return zero, errors.Newf("[%s] response body is nil", caller)
	}

	if res.StatusCode != http.StatusOK {
		return zero, errors.Newf("[%s] unexpected status code: %d, status: %s", caller, res.StatusCode, res.Status)
	}

	responseBody, readErr := io.ReadAll(res.Body)
	if readErr != nil {
		return zero, errors.Wrapf(readErr, "[%s] failed to read response body", caller)
	}

	var decodedBody responseWrapper
	err = json.Unmarshal(responseBody, &decodedBody)
	if err != nil {
		return zero, errors.Wrapf(err, "[%s] failed to unmarshal response body", caller)
	}

	resp := decodedBody.Response
	if resp.Status == "failed" {
		return resp, errors.Wrapf(ErrServer, "[%s] %d: %s", caller, resp.Error.Code, resp.Error.Message)
	}

	return resp, nil
}
