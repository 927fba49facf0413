package gopaginate

import (
	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// gormFixture is a GORMClient over a sqlmock connection of one SQL dialect.
// Build a new one per test case: sqlmock expectations and rows are consumed.
type gormFixture struct {
	dialect string
	db      *gorm.DB
	mock    sqlmock.Sqlmock
	client  *GORMClient
}

// usersQuery wraps "SELECT * FROM users WHERE name = 'lol'" with extra
// clauses applied by chain.
func (f *gormFixture) usersQuery(chain func(db *gorm.DB) *gorm.DB) *GORMQuery {
	return f.client.Query(chain(f.db.Select("*").Table("users").Where("name = 'lol'")))
}

// gormFixtureFactories lists a constructor per supported dialect.
var gormFixtureFactories = []func() (*gormFixture, error){
	newMySQLFixture,
	newPostgresFixture,
}

func newMySQLFixture() (*gormFixture, error) {
	return newGORMFixture("mysql", func(conn gorm.ConnPool) gorm.Dialector {
		return mysql.New(mysql.Config{
			Conn:                      conn,
			SkipInitializeWithVersion: true,
		})
	})
}

func newPostgresFixture() (*gormFixture, error) {
	return newGORMFixture("postgres", func(conn gorm.ConnPool) gorm.Dialector {
		return postgres.New(postgres.Config{
			Conn: conn,
		})
	})
}

func newGORMFixture(dialect string, dialector func(conn gorm.ConnPool) gorm.Dialector) (*gormFixture, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector(mockDB), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	db = db.Debug()

	return &gormFixture{
		dialect: dialect,
		db:      db,
		mock:    mock,
		client:  NewGORMClient(db),
	}, nil
}
