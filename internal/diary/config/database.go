package config

import (
	"fmt"
)

// PostgresConfig содержит настройки подключения к базе данных.
// Пустой Host означает, что хранилище не настроено: сервис стартует
// в демо-режиме и отдает безопасные значения по умолчанию.
type PostgresConfig struct {
	Host     string `yaml:"host" env:"DIARY_POSTGRES_HOST" env-default:""`
	Port     int    `yaml:"port" env:"DIARY_POSTGRES_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DIARY_POSTGRES_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"DIARY_POSTGRES_PASSWORD" env-default:"postgres"`
	Database string `yaml:"database" env:"DIARY_POSTGRES_DB" env-default:"diary"`
	MinConn  int    `yaml:"min_conn" env:"DIARY_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn  int    `yaml:"max_conn" env:"DIARY_POSTGRES_MAX_CONN" env-default:"10"`
}

// IsConfigured сообщает, задано ли подключение к базе данных.
func (p *PostgresConfig) IsConfigured() bool {
	return p.Host != ""
}

// GetDSN возвращает строку подключения к Postgres.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		p.Host, p.Port, p.User, p.Password, p.Database)
}

// GetConnectionURL возвращает URL-строку подключения для миграций.
func (p *PostgresConfig) GetConnectionURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		p.User, p.Password, p.Host, p.Port, p.Database)
}
