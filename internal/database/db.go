package database

import (
	"log"

	"asa-backend/internal/config"
	"asa-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Não foi possível conectar ao banco: %v", err)
	}

	err = DB.AutoMigrate(
		&models.StockItem{},
		&models.BasketConfiguration{},
		&models.AssemblyCounter{},
		&models.AssemblyRecord{},
		&models.Beneficiary{},
		&models.DeliveryEvent{},
		&models.DeliveryAssignment{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("Erro no AutoMigrate: %v", err)
	}

	// Linhas singleton: contador de cestas e configuração da cesta.
	// Criadas na instalação da organização, nunca removidas.
	var counterCount int64
	DB.Model(&models.AssemblyCounter{}).Count(&counterCount)
	if counterCount == 0 {
		if err := DB.Create(&models.AssemblyCounter{Count: 0}).Error; err != nil {
			log.Fatalf("Não foi possível criar o contador de cestas: %v", err)
		}
		log.Println("Contador de cestas criado (0)")
	}

	var cfgCount int64
	DB.Model(&models.BasketConfiguration{}).Count(&cfgCount)
	if cfgCount == 0 {
		if err := DB.Create(&models.BasketConfiguration{Name: "Cesta Básica", Items: "[]"}).Error; err != nil {
			log.Fatalf("Não foi possível criar a configuração da cesta: %v", err)
		}
		log.Println("Configuração de cesta criada (receita vazia)")
	}

	log.Println("Conexão com o banco estabelecida. Migration concluída.")
}
