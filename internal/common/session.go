/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package common

import (
	"errors"
	"fmt"

	"wallet-client-go/internal/remote"

	"go.uber.org/zap"
)

var ErrNotLoggedIn = errors.New("not logged in, run the login command first")

// RequireSession fails when no access token is stored.
// Offline use is allowed as long as a session exists.
func RequireSession(services *Services, logger *zap.Logger) error {
	if !services.Auth.IsAuthenticated() {
		return ErrNotLoggedIn
	}
	logger.Debug("Session found")
	return nil
}

// DescribeError turns an API error into a message for the terminal
func DescribeError(err error) string {
	var rejected *remote.RejectedError
	switch {
	case errors.As(err, &rejected):
		return fmt.Sprintf("%s (%d)", rejected.APIError.Message, rejected.StatusCode)
	case remote.IsNetworkError(err):
		return "We couldn't reach the wallet service. Please check your connection and try again."
	default:
		return err.Error()
	}
}
