package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jmoiron/sqlx"

	"library-api/internal/domain"
	"library-api/internal/repository"
)

const createBooksTable = `
CREATE TABLE IF NOT EXISTS books (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	author_id INTEGER NOT NULL,
	category_id INTEGER NOT NULL,
	published_date DATETIME NOT NULL,
	price REAL NOT NULL DEFAULT 0 CHECK (price >= 0),
	stock INTEGER NOT NULL DEFAULT 0,
	is_borrowed INTEGER NOT NULL DEFAULT 0,
	cover_key TEXT NOT NULL DEFAULT '',
	FOREIGN KEY(author_id) REFERENCES authors(id) ON DELETE CASCADE,
	FOREIGN KEY(category_id) REFERENCES categories(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_books_author_id ON books(author_id);
CREATE INDEX IF NOT EXISTS idx_books_category_id ON books(category_id);
`

// sortColumns maps every allowed sort field to the column it orders by.
var sortColumns = map[domain.SortField]string{
	domain.SortByID:            "b.id",
	domain.SortByTitle:         "b.title",
	domain.SortByPublishedDate: "b.published_date",
	domain.SortByPrice:         "b.price",
	domain.SortByStock:         "b.stock",
	domain.SortByIsBorrowed:    "b.is_borrowed",
	domain.SortByAuthorName:    "a.name",
	domain.SortByCategoryName:  "c.name",
}

type bookRow struct {
	ID            int64     `db:"id"`
	Title         string    `db:"title"`
	AuthorID      int64     `db:"author_id"`
	AuthorName    string    `db:"author_name"`
	CategoryID    int64     `db:"category_id"`
	CategoryName  string    `db:"category_name"`
	PublishedDate time.Time `db:"published_date"`
	Price         float64   `db:"price"`
	Stock         int       `db:"stock"`
	IsBorrowed    bool      `db:"is_borrowed"`
	CoverKey      string    `db:"cover_key"`
}

func (r bookRow) toDomain() domain.Book {
	return domain.Book{
		ID:            r.ID,
		Title:         r.Title,
		AuthorID:      r.AuthorID,
		AuthorName:    r.AuthorName,
		CategoryID:    r.CategoryID,
		CategoryName:  r.CategoryName,
		PublishedDate: r.PublishedDate.UTC(),
		Price:         r.Price,
		Stock:         r.Stock,
		IsBorrowed:    r.IsBorrowed,
		CoverKey:      r.CoverKey,
	}
}

type BookRepository struct {
	db      *sqlx.DB
	dialect goqu.DialectWrapper
}

func NewBookRepository(db *sql.DB) repository.BookRepository {
	return &BookRepository{
		db:      sqlx.NewDb(db, "sqlite"),
		dialect: goqu.Dialect("sqlite3"),
	}
}

func (r *BookRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createBooksTable); err != nil {
		return fmt.Errorf("create books table: %w", err)
	}
	return nil
}

func (r *BookRepository) Create(ctx context.Context, book *domain.Book) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO books (title, author_id, category_id, published_date, price, stock, is_borrowed, cover_key)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		book.Title,
		book.AuthorID,
		book.CategoryID,
		book.PublishedDate.UTC(),
		book.Price,
		book.Stock,
		book.IsBorrowed,
		book.CoverKey,
	)
	if err != nil {
		if foreignKeyViolation(err) {
			return 0, domain.InvalidArgumentf("book references unknown author or category")
		}
		return 0, fmt.Errorf("insert book: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("book last insert id: %w", err)
	}
	book.ID = id
	return id, nil
}

func (r *BookRepository) Update(ctx context.Context, book *domain.Book) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE books
SET title=?, author_id=?, category_id=?, published_date=?, price=?, stock=?, is_borrowed=?, cover_key=?
WHERE id=?`,
		book.Title,
		book.AuthorID,
		book.CategoryID,
		book.PublishedDate.UTC(),
		book.Price,
		book.Stock,
		book.IsBorrowed,
		book.CoverKey,
		book.ID,
	)
	if err != nil {
		if foreignKeyViolation(err) {
			return domain.InvalidArgumentf("book references unknown author or category")
		}
		return fmt.Errorf("update book: %w", err)
	}
	return requireAffected(res, "book", book.ID)
}

func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return requireAffected(res, "book", id)
}

func (r *BookRepository) Get(ctx context.Context, id int64) (*domain.Book, error) {
	query, args, err := r.selectBooks().
		Where(goqu.I("b.id").Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build book query: %w", err)
	}

	var row bookRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return nil, notFound(err, "book", id)
	}
	book := row.toDomain()
	return &book, nil
}

func (r *BookRepository) List(ctx context.Context, q domain.BookQuery) ([]domain.Book, error) {
	column, ok := sortColumns[q.SortBy]
	if !ok {
		return nil, domain.InvalidArgumentf("unsupported sort field %q", q.SortBy)
	}

	order := goqu.I(column).Asc()
	if !q.Ascending {
		order = goqu.I(column).Desc()
	}

	query, args, err := r.filtered(r.selectBooks(), q.Filter).
		Order(order, goqu.I("b.id").Asc()).
		Limit(uint(q.PageSize)).
		Offset(uint(q.Offset())).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build books query: %w", err)
	}

	var rows []bookRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}

	books := make([]domain.Book, len(rows))
	for i := range rows {
		books[i] = rows[i].toDomain()
	}
	return books, nil
}

func (r *BookRepository) Count(ctx context.Context, filter string) (int, error) {
	query, args, err := r.filtered(r.joined(), filter).
		Select(goqu.COUNT(goqu.Star())).
		Prepared(true).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return count, nil
}

func (r *BookRepository) joined() *goqu.SelectDataset {
	return r.dialect.
		From(goqu.T("books").As("b")).
		InnerJoin(goqu.T("authors").As("a"), goqu.On(goqu.I("a.id").Eq(goqu.I("b.author_id")))).
		InnerJoin(goqu.T("categories").As("c"), goqu.On(goqu.I("c.id").Eq(goqu.I("b.category_id"))))
}

func (r *BookRepository) selectBooks() *goqu.SelectDataset {
	return r.joined().Select(
		goqu.I("b.id").As("id"),
		goqu.I("b.title").As("title"),
		goqu.I("b.author_id").As("author_id"),
		goqu.I("a.name").As("author_name"),
		goqu.I("b.category_id").As("category_id"),
		goqu.I("c.name").As("category_name"),
		goqu.I("b.published_date").As("published_date"),
		goqu.I("b.price").As("price"),
		goqu.I("b.stock").As("stock"),
		goqu.I("b.is_borrowed").As("is_borrowed"),
		goqu.I("b.cover_key").As("cover_key"),
	)
}

// filtered applies the shared listing/count predicate: the filter text must
// appear in the title, author name or category name (ASCII case-insensitive).
func (r *BookRepository) filtered(ds *goqu.SelectDataset, filter string) *goqu.SelectDataset {
	if filter == "" {
		return ds
	}
	return ds.Where(goqu.Or(
		contains("b.title", filter),
		contains("a.name", filter),
		contains("c.name", filter),
	))
}

func contains(column, needle string) exp.Expression {
	return goqu.L("instr(lower(?), lower(?)) > 0", goqu.I(column), needle)
}
