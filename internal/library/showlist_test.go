package library

import (
	"sync"
	"testing"

	"github.com/cesargomez89/episodarr/internal/domain"
)

func TestShowList(t *testing.T) {
	l := NewShowList()
	if l.Len() != 0 {
		t.Fatalf("Expected empty list, got %d", l.Len())
	}

	if !l.Add(&domain.Show{IndexerID: 1, Name: "one"}) {
		t.Error("Expected first add to succeed")
	}
	if l.Add(&domain.Show{IndexerID: 1, Name: "dup"}) {
		t.Error("Expected duplicate indexer id to be rejected")
	}
	l.Add(&domain.Show{IndexerID: 2, Name: "two"})

	if got := l.Find(2); got == nil || got.Name != "two" {
		t.Errorf("Expected to find show two, got %+v", got)
	}
	if got := l.Find(3); got != nil {
		t.Errorf("Expected nil for unknown show, got %+v", got)
	}

	all := l.All()
	all[0] = nil
	if l.Find(1) == nil {
		t.Error("Expected All to return a copy")
	}

	l.Set(&domain.Show{IndexerID: 9})
	if l.Len() != 1 || l.Find(9) == nil {
		t.Errorf("Expected Set to replace the list, got %d shows", l.Len())
	}

	l.Reset()
	if l.Len() != 0 {
		t.Errorf("Expected Reset to empty the list, got %d", l.Len())
	}
}

func TestShowListConcurrentAdd(t *testing.T) {
	l := NewShowList()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			l.Add(&domain.Show{IndexerID: id % 10})
		}(i)
	}
	wg.Wait()

	if l.Len() != 10 {
		t.Errorf("Expected 10 distinct shows, got %d", l.Len())
	}
}
