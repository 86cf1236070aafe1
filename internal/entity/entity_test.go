package entity

import (
	"encoding/json"
	"reflect"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestUserApplyMergesOnlySetFields(t *testing.T) {
	// Arrange
	phone := "555-0100"
	orig := User{
		ID:         7,
		Name:       "Ana",
		Email:      "ana@example.com",
		Phone:      &phone,
		UserType:   UserTypeFoster,
		IsActive:   true,
		IsVerified: true,
	}
	before, _ := json.Marshal(orig)

	// Act
	got := orig.Apply(UserUpdate{Name: strPtr("X")})

	// Assert
	if got.Name != "X" {
		t.Fatalf("Name = %q, want X", got.Name)
	}
	got.Name = orig.Name
	after, _ := json.Marshal(got)
	if string(before) != string(after) {
		t.Fatalf("other fields changed:\nbefore %s\nafter  %s", before, after)
	}
	if orig.Name != "Ana" {
		t.Fatalf("Apply mutated the receiver")
	}
}

func TestUserApplyDoesNotAliasPointers(t *testing.T) {
	loc := "Madrid"
	upd := UserUpdate{Location: &loc}
	got := User{}.Apply(upd)
	loc = "Sevilla"
	if *got.Location != "Madrid" {
		t.Fatalf("Location aliased the update pointer: %q", *got.Location)
	}
}

func TestUserTypeCanCreateDogs(t *testing.T) {
	tests := []struct {
		typ  UserType
		want bool
	}{
		{UserTypeFoster, false},
		{UserTypeShelter, false},
		{UserTypeShelterAdmin, true},
		{UserTypeVolunteer, false},
		{UserTypeAdmin, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			if !tt.typ.Valid() {
				t.Fatalf("%q not valid", tt.typ)
			}
			if got := tt.typ.CanCreateDogs(); got != tt.want {
				t.Fatalf("CanCreateDogs() = %v, want %v", got, tt.want)
			}
		})
	}
	if UserType("root").Valid() {
		t.Fatal("unknown user type reported valid")
	}
}

func TestQueryValues(t *testing.T) {
	tests := []struct {
		name string
		got  map[string][]string
		want map[string][]string
	}{
		{
			name: "dog query skips empty",
			got:  DogQuery{Query: "lab", Size: DogLarge, Limit: 20}.Values(),
			want: map[string][]string{"q": {"lab"}, "size": {"large"}, "limit": {"20"}},
		},
		{
			name: "empty dog query",
			got:  DogQuery{}.Values(),
			want: map[string][]string{},
		},
		{
			name: "user query",
			got:  UserQuery{Search: "ana", UserType: UserTypeShelter}.Values(),
			want: map[string][]string{"search": {"ana"}, "user_type": {"shelter"}},
		},
		{
			name: "application query",
			got:  ApplicationQuery{Status: ApplicationPending, DogID: 3}.Values(),
			want: map[string][]string{"status": {"pending"}, "dog_id": {"3"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.want) {
				t.Fatalf("Values() = %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestAdminUserUpdateOmitsUnset(t *testing.T) {
	b, err := json.Marshal(AdminUserUpdate{Name: strPtr("Bo")})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"name":"Bo"}` {
		t.Fatalf("marshal = %s", b)
	}
	if (AdminUserUpdate{}).Empty() != true {
		t.Fatal("zero update not empty")
	}
}
