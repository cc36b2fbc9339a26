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

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"wallet-client-go/internal/common"
	"wallet-client-go/internal/config"

	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	emailFlag := flag.String("email", "", "Account email (required unless --logout)")
	passwordFlag := flag.String("password", "", "Account password (defaults to WALLET_PASSWORD)")
	logoutFlag := flag.Bool("logout", false, "Remove the stored session and saved filters")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	if *logoutFlag {
		if err := services.Auth.Logout(); err != nil {
			logger.Fatal("Logout failed", zap.Error(err))
		}
		fmt.Println("Logged out")
		return
	}

	password := *passwordFlag
	if password == "" {
		password = os.Getenv("WALLET_PASSWORD")
	}

	if _, err := services.Auth.Login(ctx, *emailFlag, password); err != nil {
		fmt.Printf("Login failed: %s\n", common.DescribeError(err))
		logger.Fatal("Login failed", zap.String("email", *emailFlag), zap.Error(err))
	}

	fmt.Printf("Logged in as %s\n", *emailFlag)
	logger.Info("Login completed", zap.String("email", *emailFlag))
}
