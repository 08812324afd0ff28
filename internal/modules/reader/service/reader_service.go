package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"

	"readenvy/internal/modules/reader/domain"
	readerout "readenvy/internal/modules/reader/port/out"
	apperrors "readenvy/internal/platform/errors"
)

type View struct {
	Book       domain.BookRef
	Page       domain.Page
	TotalPages int
	Outline    []domain.OutlineEntry
}

type openDoc struct {
	path    string
	doc     readerout.Document
	outline []domain.OutlineEntry
}

type ReaderService struct {
	books    readerout.BookResolver
	renderer readerout.Renderer
	log      hclog.Logger

	mu   sync.Mutex
	docs map[string]*openDoc
}

func NewReaderService(books readerout.BookResolver, renderer readerout.Renderer, logger hclog.Logger) *ReaderService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &ReaderService{
		books:    books,
		renderer: renderer,
		log:      logger.Named("reader"),
		docs:     map[string]*openDoc{},
	}
}

func (s *ReaderService) Open(ctx context.Context, bookID string, page int) (View, error) {
	if strings.TrimSpace(bookID) == "" {
		return View{}, fmt.Errorf("%w: book id is required", apperrors.ErrInvalidInput)
	}
	book, err := s.books.Resolve(ctx, bookID)
	if err != nil {
		return View{}, err
	}
	od, err := s.document(ctx, book)
	if err != nil {
		return View{}, err
	}

	total := od.doc.PageCount()
	if total <= 0 {
		total = book.TotalPages
	}
	n := domain.StartPage(page, book.CurrentPage, total)
	text, err := od.doc.PageText(n)
	if err != nil {
		return View{}, fmt.Errorf("render page %d of %s: %w", n, book.ID, err)
	}
	return View{
		Book:       book,
		Page:       domain.Page{Number: n, Text: text},
		TotalPages: total,
		Outline:    od.outline,
	}, nil
}

// document returns the cached open document for book, reopening it when the
// file path changed.
func (s *ReaderService) document(ctx context.Context, book domain.BookRef) (*openDoc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if od, ok := s.docs[book.ID]; ok {
		if od.path == book.FilePath {
			return od, nil
		}
		_ = od.doc.Close()
		delete(s.docs, book.ID)
	}
	if book.FilePath == "" {
		return nil, fmt.Errorf("%w: book %s has no file", apperrors.ErrNotFound, book.ID)
	}
	doc, err := s.renderer.Open(ctx, book.FilePath)
	if err != nil {
		return nil, err
	}
	outline, err := doc.Outline()
	if err != nil {
		s.log.Warn("outline unavailable", "book", book.ID, "error", err)
		outline = nil
	}
	od := &openDoc{path: book.FilePath, doc: doc, outline: outline}
	s.docs[book.ID] = od
	s.log.Debug("document opened", "book", book.ID, "pages", doc.PageCount())
	return od, nil
}

func (s *ReaderService) Close(bookID string) error {
	s.mu.Lock()
	od, ok := s.docs[bookID]
	delete(s.docs, bookID)
	s.mu.Unlock()
	if !ok {
		return nil
	}
	return od.doc.Close()
}

func (s *ReaderService) CloseAll() error {
	s.mu.Lock()
	docs := s.docs
	s.docs = map[string]*openDoc{}
	s.mu.Unlock()

	var errs []error
	for _, od := range docs {
		if err := od.doc.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *ReaderService) OpenCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}
