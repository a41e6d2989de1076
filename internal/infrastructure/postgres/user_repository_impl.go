package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DonOmbisi/kilimo3/internal/domain/entity"
	"github.com/DonOmbisi/kilimo3/internal/domain/repository"
	"github.com/DonOmbisi/kilimo3/pkg/apperrors"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts a new user. The unique index on wallet_address makes this
// atomic against concurrent connects for the same address: the loser gets a
// Conflict and is expected to re-read the winner's row.
func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (wallet_address, name, basename, phone)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (wallet_address) DO NOTHING
		RETURNING id, created_at, updated_at
	`, u.WalletAddress, u.Name, u.Basename, u.Phone)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.Conflict("wallet address already registered")
		}
		return apperrors.Store(err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *UserRepository) GetByWallet(ctx context.Context, walletAddress string) (*entity.User, error) {
	return r.getOne(ctx, `WHERE wallet_address = $1`, walletAddress)
}

func (r *UserRepository) getOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	u := &entity.User{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, wallet_address, name, basename, phone, created_at, updated_at
		FROM users `+where, arg)

	if err := row.Scan(&u.ID, &u.WalletAddress, &u.Name, &u.Basename, &u.Phone,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Store(err)
	}
	return u, nil
}

// UpdateProfile applies only the non-nil patch fields.
func (r *UserRepository) UpdateProfile(ctx context.Context, id string, patch repository.ProfilePatch) (*entity.User, error) {
	u := &entity.User{}
	row := r.pool.QueryRow(ctx, `
		UPDATE users
		SET name     = COALESCE($2, name),
		    basename = COALESCE($3, basename),
		    phone    = COALESCE($4, phone),
		    updated_at = now()
		WHERE id = $1
		RETURNING id, wallet_address, name, basename, phone, created_at, updated_at
	`, id, patch.Name, patch.Basename, patch.Phone)

	if err := row.Scan(&u.ID, &u.WalletAddress, &u.Name, &u.Basename, &u.Phone,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Store(err)
	}
	return u, nil
}

// GetAggregate loads the user and populates the relations named in spec.
// Nested expansions decide which refs are attached and field subsets which
// ref fields are projected; relations absent from the spec are left empty,
// not nil.
func (r *UserRepository) GetAggregate(ctx context.Context, id string, spec repository.ExpandSpec) (*entity.UserAggregate, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	agg := newAggregate(u)

	if exp, ok := spec.Get("my_order"); ok {
		if agg.MyOrders, err = r.ordersFor(ctx, id, exp); err != nil {
			return nil, err
		}
	}
	if spec.Has("my_listings") {
		if agg.MyListings, err = r.listingsFor(ctx, id); err != nil {
			return nil, err
		}
	}
	if exp, ok := spec.Get("my_donations"); ok {
		if agg.MyDonations, err = r.donationsFor(ctx, id, exp); err != nil {
			return nil, err
		}
	}
	if exp, ok := spec.Get("my_fundraisers"); ok {
		if agg.MyFundraisers, err = r.fundraisersFor(ctx, id, exp); err != nil {
			return nil, err
		}
	}
	if spec.Has("my_blogs") {
		if agg.MyBlogs, err = r.blogsFor(ctx, id); err != nil {
			return nil, err
		}
	}
	return agg, nil
}

// newAggregate seeds the expanded view with empty relation lists so relations
// that are absent or empty serialize as [] rather than null.
func newAggregate(u *entity.User) *entity.UserAggregate {
	return &entity.UserAggregate{
		User:          *u,
		MyOrders:      make([]entity.OrderView, 0),
		MyListings:    make([]entity.Listing, 0),
		MyDonations:   make([]entity.Donation, 0),
		MyFundraisers: make([]entity.FundraiserSummary, 0),
		MyBlogs:       make([]entity.Blog, 0),
	}
}

// projectUserRef trims a populated user down to the requested field subset.
// The id always survives, like the source record id in any populated ref.
func projectUserRef(u entity.UserRef, exp repository.Expand) *entity.UserRef {
	if !exp.Wants("name") {
		u.Name = ""
	}
	if !exp.Wants("wallet_address") {
		u.WalletAddress = ""
	}
	return &u
}

// projectListingRef trims a populated listing to the requested fields.
func projectListingRef(l entity.ListingRef, exp repository.Expand) *entity.ListingRef {
	if !exp.Wants("images") {
		l.Images = nil
	}
	if !exp.Wants("title") {
		l.Title = ""
	}
	if !exp.Wants("desc") {
		l.Desc = ""
	}
	if !exp.Wants("location") {
		l.Location = ""
	}
	return &l
}

func (r *UserRepository) ordersFor(ctx context.Context, userID string, exp repository.Expand) ([]entity.OrderView, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT o.id, o.quantity, o.total_price, o.status, o.created_at,
		       l.id, l.images, l.title, l.descr, l.location,
		       b.id, b.name, b.wallet_address,
		       s.id, s.name, s.wallet_address
		FROM orders o
		JOIN listings l ON l.id = o.listing_id
		JOIN users b ON b.id = o.buyer_id
		JOIN users s ON s.id = o.seller_id
		WHERE o.buyer_id = $1
		ORDER BY o.created_at
	`, userID)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	defer rows.Close()

	listingExp, withListing := exp.Sub("listing")
	buyerExp, withBuyer := exp.Sub("buyer")
	sellerExp, withSeller := exp.Sub("seller")

	out := make([]entity.OrderView, 0)
	for rows.Next() {
		var (
			o      entity.OrderView
			lst    entity.ListingRef
			buyer  entity.UserRef
			seller entity.UserRef
		)
		if err := rows.Scan(&o.ID, &o.Quantity, &o.TotalPrice, &o.Status, &o.CreatedAt,
			&lst.ID, &lst.Images, &lst.Title, &lst.Desc, &lst.Location,
			&buyer.ID, &buyer.Name, &buyer.WalletAddress,
			&seller.ID, &seller.Name, &seller.WalletAddress); err != nil {
			return nil, apperrors.Store(err)
		}
		if withListing {
			o.Listing = projectListingRef(lst, listingExp)
		}
		if withBuyer {
			o.Buyer = projectUserRef(buyer, buyerExp)
		}
		if withSeller {
			o.Seller = projectUserRef(seller, sellerExp)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Store(err)
	}
	return out, nil
}

func (r *UserRepository) listingsFor(ctx context.Context, userID string) ([]entity.Listing, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, descr, price, total_stock, sold_stock, images, location, owner_id, listing_id, created_at
		FROM listings
		WHERE owner_id = $1
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	defer rows.Close()

	out := make([]entity.Listing, 0)
	for rows.Next() {
		var l entity.Listing
		if err := rows.Scan(&l.ID, &l.Title, &l.Desc, &l.Price, &l.TotalStock, &l.SoldStock,
			&l.Images, &l.Location, &l.OwnerID, &l.ListingID, &l.CreatedAt); err != nil {
			return nil, apperrors.Store(err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Store(err)
	}
	return out, nil
}

func (r *UserRepository) donationsFor(ctx context.Context, userID string, exp repository.Expand) ([]entity.Donation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT d.id, d.amount, d.donated_at,
		       f.id, f.title, f.target_funds, f.images,
		       u.id, u.name, u.wallet_address
		FROM donations d
		JOIN fundraisers f ON f.id = d.fundraiser_id
		JOIN users u ON u.id = f.owner_id
		WHERE d.user_id = $1
		ORDER BY d.donated_at
	`, userID)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	defer rows.Close()

	fundraiserExp, withFundraiser := exp.Sub("fundraiser")
	ownerExp, withOwner := fundraiserExp.Sub("owner")

	out := make([]entity.Donation, 0)
	for rows.Next() {
		var (
			d     entity.Donation
			f     entity.FundraiserRef
			owner entity.UserRef
		)
		if err := rows.Scan(&d.ID, &d.Amount, &d.DonatedAt,
			&f.ID, &f.Title, &f.TargetFunds, &f.Images,
			&owner.ID, &owner.Name, &owner.WalletAddress); err != nil {
			return nil, apperrors.Store(err)
		}
		if withFundraiser {
			if withOwner {
				f.Owner = projectUserRef(owner, ownerExp)
			}
			d.Fundraiser = &f
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Store(err)
	}
	return out, nil
}

func (r *UserRepository) fundraisersFor(ctx context.Context, userID string, exp repository.Expand) ([]entity.FundraiserSummary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, target_funds, project_id, deadline, amt_collected, images
		FROM fundraisers
		WHERE owner_id = $1
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	defer rows.Close()

	out := make([]entity.FundraiserSummary, 0)
	ids := make([]string, 0)
	for rows.Next() {
		f := entity.FundraiserSummary{Donators: make([]entity.DonatorEntry, 0)}
		if err := rows.Scan(&f.ID, &f.Title, &f.TargetFunds, &f.ProjectID,
			&f.Deadline, &f.AmtCollected, &f.Images); err != nil {
			return nil, apperrors.Store(err)
		}
		out = append(out, f)
		ids = append(ids, f.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Store(err)
	}

	donatorsExp, withDonators := exp.Sub("donators")
	if !exp.Wants("donators") {
		withDonators = false
	}
	if len(ids) == 0 || !withDonators {
		return out, nil
	}
	userExp, withUser := donatorsExp.Sub("user")

	drows, err := r.pool.Query(ctx, `
		SELECT d.fundraiser_id, d.amount, d.donated_at,
		       u.id, u.name, u.wallet_address
		FROM donations d
		JOIN users u ON u.id = d.user_id
		WHERE d.fundraiser_id = ANY($1)
		ORDER BY d.donated_at
	`, ids)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	defer drows.Close()

	byFundraiser := make(map[string][]entity.DonatorEntry, len(ids))
	for drows.Next() {
		var (
			fid   string
			entry entity.DonatorEntry
			donor entity.UserRef
		)
		if err := drows.Scan(&fid, &entry.Amount, &entry.DonatedAt,
			&donor.ID, &donor.Name, &donor.WalletAddress); err != nil {
			return nil, apperrors.Store(err)
		}
		if withUser {
			entry.User = projectUserRef(donor, userExp)
		}
		byFundraiser[fid] = append(byFundraiser[fid], entry)
	}
	if err := drows.Err(); err != nil {
		return nil, apperrors.Store(err)
	}

	attachDonators(out, byFundraiser)
	return out, nil
}

// attachDonators fills each fundraiser's donator list from the grouped
// entries and derives the donator count. A fundraiser with no entries keeps
// its empty list and a count of zero.
func attachDonators(fundraisers []entity.FundraiserSummary, byFundraiser map[string][]entity.DonatorEntry) {
	for i := range fundraisers {
		if entries, ok := byFundraiser[fundraisers[i].ID]; ok {
			fundraisers[i].Donators = entries
		}
		fundraisers[i].DonatorCount = len(fundraisers[i].Donators)
	}
}

func (r *UserRepository) blogsFor(ctx context.Context, userID string) ([]entity.Blog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, content, image, writer_id, created_at
		FROM blogs
		WHERE writer_id = $1
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	defer rows.Close()

	out := make([]entity.Blog, 0)
	for rows.Next() {
		var b entity.Blog
		if err := rows.Scan(&b.ID, &b.Title, &b.Content, &b.Image, &b.WriterID, &b.CreatedAt); err != nil {
			return nil, apperrors.Store(err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Store(err)
	}
	return out, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
