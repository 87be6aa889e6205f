package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	EnvShopifyStoreURL    = "SHOPIFY_STORE_URL"
	EnvShopifyAccessToken = "SHOPIFY_ACCESS_TOKEN"
	EnvPort               = "PORT"
	EnvAuditProductIDs    = "AUDIT_PRODUCT_IDS"
	EnvAuditSchedule      = "AUDIT_SCHEDULE"
)

// Config carries everything the process reads from the environment. It is
// built once in main and injected; no package keeps credential globals.
type Config struct {
	ShopifyStoreURL string
	ShopifyToken    string
	Port            string
	AuditProductIDs []int64
	AuditSchedule   string
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		ShopifyStoreURL: os.Getenv(EnvShopifyStoreURL),
		ShopifyToken:    os.Getenv(EnvShopifyAccessToken),
		Port:            os.Getenv(EnvPort),
		AuditSchedule:   os.Getenv(EnvAuditSchedule),
	}
	if cfg.ShopifyStoreURL == "" {
		return nil, fmt.Errorf("%s not set", EnvShopifyStoreURL)
	}
	if cfg.ShopifyToken == "" {
		return nil, fmt.Errorf("%s not set", EnvShopifyAccessToken)
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.AuditSchedule == "" {
		cfg.AuditSchedule = "0 3 * * *"
	}

	ids, err := parseProductIDs(os.Getenv(EnvAuditProductIDs))
	if err != nil {
		return nil, err
	}
	cfg.AuditProductIDs = ids

	return cfg, nil
}

func parseProductIDs(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid product id %q in %s", part, EnvAuditProductIDs)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
