package database

import (
	"database/sql"
	"encoding/json"
	"log"

	_ "github.com/lib/pq"
)

var DB *sql.DB

func InitDB(url string) {
	if url == "" {
		log.Println("⚠️ DB_URL не установлен, работа без базы данных")
		return
	}

	var err error
	DB, err = sql.Open("postgres", url)
	if err != nil {
		log.Fatalf("❌ Ошибка подключения к базе данных: %v", err)
	}

	if err = DB.Ping(); err != nil {
		log.Fatalf("❌ База данных недоступна: %v", err)
	}

	log.Println("✓ Подключение к PostgreSQL установлено")

	// Журнал всех анализов
	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS analysis_results (
			id SERIAL PRIMARY KEY,
			text TEXT,
			url TEXT,
			result JSONB,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		log.Fatalf("❌ Ошибка создания таблицы analysis_results: %v", err)
	}

	// Репутация доменов по URL-анализам
	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS domain_stats (
			domain TEXT PRIMARY KEY,
			total_analyses INTEGER DEFAULT 0,
			sum_credibility INTEGER DEFAULT 0,
			avg_credibility FLOAT   DEFAULT 0,
			last_analyzed_at TIMESTAMPTZ DEFAULT NOW()
		)
	`)
	if err != nil {
		log.Fatalf("❌ Ошибка создания таблицы domain_stats: %v", err)
	}

	// Результаты, которыми поделились по короткой ссылке
	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS shared_results (
			id         TEXT PRIMARY KEY,
			result     JSONB NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			expires_at TIMESTAMPTZ DEFAULT NOW() + INTERVAL '30 days'
		)
	`)
	if err != nil {
		log.Fatalf("❌ Ошибка создания таблицы shared_results: %v", err)
	}
}

// SaveAnalysis — пишет результат в журнал. Ошибки не фатальны:
// анализ дороже записи в журнал.
func SaveAnalysis(text, url string, result interface{}) {
	if DB == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		log.Printf("[DB] ⚠ Ошибка сериализации результата: %v", err)
		return
	}
	if _, err := DB.Exec(
		`INSERT INTO analysis_results (text, url, result) VALUES ($1, $2, $3)`,
		text, url, data,
	); err != nil {
		log.Printf("[DB] ⚠ Ошибка записи результата: %v", err)
	}
}
