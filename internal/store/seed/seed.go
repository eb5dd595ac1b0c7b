// Package seed holds the demo data set loaded into a fresh store.
package seed

import "github.com/5w1tchy/library-admin/internal/models"

func Authors() []models.Author {
	return []models.Author{
		{ID: "1", Name: "J.K. Rowling", Bio: "British author, best known for the Harry Potter series."},
		{ID: "2", Name: "George Orwell", Bio: "English novelist and essayist, journalist and critic."},
		{ID: "3", Name: "Agatha Christie", Bio: "English writer known for her sixty-six detective novels and fourteen short story collections."},
		{ID: "4", Name: "Isaac Asimov", Bio: "American writer and professor of biochemistry at Boston University."},
		{ID: "5", Name: "Haruki Murakami", Bio: "Japanese writer. His novels, essays, and short stories have been bestsellers in Japan as well as internationally."},
		{ID: "6", Name: "J.R.R. Tolkien", Bio: "English writer and philologist, author of The Hobbit and The Lord of the Rings."},
		{ID: "7", Name: "Robert C. Martin", Bio: "American software engineer and author."},
		{ID: "8", Name: "Andrew Hunt", Bio: "Co-author of The Pragmatic Programmer."},
		{ID: "9", Name: "Yuval Noah Harari", Bio: "Israeli historian and professor."},
		{ID: "10", Name: "F. Scott Fitzgerald", Bio: "American novelist of the Jazz Age."},
		{ID: "11", Name: "James Clear", Bio: "American writer on habits and decision making."},
		{ID: "12", Name: "Harper Lee", Bio: "American novelist."},
	}
}

func Categories() []models.Category {
	return []models.Category{
		{ID: "1", Name: "Fiction", Description: "Fictional literature and stories"},
		{ID: "2", Name: "Non-Fiction", Description: "Factual and informative books"},
		{ID: "3", Name: "Science", Description: "Scientific research and discoveries"},
		{ID: "4", Name: "History", Description: "Historical events and figures"},
		{ID: "5", Name: "Technology", Description: "Computers, programming, and tech"},
	}
}

// Books quantities are chosen so that derived availability matches the demo:
// "1984" has its single copy out on LN-002 and shows as out of stock.
func Books() []models.Book {
	return []models.Book{
		{ID: "1", Title: "Harry Potter and the Sorcerer's Stone", AuthorID: "1", CategoryID: "1", ISBN: "978-0439708180", Quantity: 5, Location: "A-01"},
		{ID: "2", Title: "1984", AuthorID: "2", CategoryID: "1", ISBN: "978-0451524935", Quantity: 1, Location: "B-03"},
		{ID: "3", Title: "The Hobbit", AuthorID: "6", CategoryID: "1", ISBN: "978-0547928227", Quantity: 2, Location: "A-04"},
		{ID: "4", Title: "Clean Code", AuthorID: "7", CategoryID: "5", ISBN: "978-0132350884", Quantity: 3, Location: "T-01"},
		{ID: "5", Title: "The Pragmatic Programmer", AuthorID: "8", CategoryID: "5", ISBN: "978-0135957059", Quantity: 2, Location: "T-02"},
		{ID: "6", Title: "Sapiens: A Brief History of Humankind", AuthorID: "9", CategoryID: "4", ISBN: "978-0062316097", Quantity: 0, Location: "H-01"},
		{ID: "7", Title: "The Great Gatsby", AuthorID: "10", CategoryID: "1", ISBN: "978-0743273565", Quantity: 4, Location: "A-07"},
		{ID: "8", Title: "Atomic Habits", AuthorID: "11", CategoryID: "2", ISBN: "978-0735211292", Quantity: 3, Location: "N-02"},
		{ID: "9", Title: "To Kill a Mockingbird", AuthorID: "12", CategoryID: "1", ISBN: "978-0061120084", Quantity: 2, Location: "A-09"},
	}
}

func Readers() []models.Reader {
	return []models.Reader{
		{ID: "1", CardID: "RD-2024001", Name: "Nguyen Van A", Email: "nguyenvana@example.com", Phone: "0912345678", Status: models.ReaderActive, JoinedDate: models.MustDate("2024-01-15")},
		{ID: "2", CardID: "RD-2024002", Name: "Tran Thi B", Email: "tranthib@example.com", Phone: "0987654321", Status: models.ReaderBlocked, JoinedDate: models.MustDate("2024-02-20")},
		{ID: "3", CardID: "RD-2024003", Name: "Le Van C", Email: "levanc@example.com", Phone: "0909090909", Status: models.ReaderExpired, JoinedDate: models.MustDate("2023-11-05")},
	}
}

func Loans() []models.Loan {
	returned := models.MustDate("2024-01-20")
	return []models.Loan{
		{ID: "LN-001", ReaderID: "1", BookID: "1", BorrowDate: models.MustDate("2024-03-01"), DueDate: models.MustDate("2024-03-15")},
		{ID: "LN-002", ReaderID: "2", BookID: "2", BorrowDate: models.MustDate("2024-02-01"), DueDate: models.MustDate("2024-02-15")},
		{ID: "LN-003", ReaderID: "1", BookID: "3", BorrowDate: models.MustDate("2024-01-10"), DueDate: models.MustDate("2024-01-24"), ReturnDate: &returned},
	}
}
